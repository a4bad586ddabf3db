package resolve

import (
	"strings"
	"testing"

	"ventia/internal/domain/dialog"
)

func entities(pairs ...string) dialog.Entities {
	var e dialog.Entities
	for i := 0; i+1 < len(pairs); i += 2 {
		e.Set(pairs[i], pairs[i+1])
	}
	return e
}

func TestResolve_CreateCustomer(t *testing.T) {
	out := Resolver{}.Resolve(
		dialog.Intent{Operation: dialog.OpCreate, Kind: dialog.KindCustomer},
		entities("name", "Juan Pérez", "email", "juan@example.com"),
	)
	if out.Action == nil {
		t.Fatalf("expected action, got result %+v", out.Result)
	}
	if !out.Action.RequiresConfirmation {
		t.Fatal("create must require confirmation")
	}
	if out.Action.Params["name"] != "Juan Pérez" || out.Action.Params["email"] != "juan@example.com" {
		t.Fatalf("unexpected params %+v", out.Action.Params)
	}
	if !strings.Contains(out.Action.Summary, "create customer") {
		t.Fatalf("summary should name the operation: %q", out.Action.Summary)
	}
}

func TestResolve_ReadOnlyNeedsNoConfirmation(t *testing.T) {
	for _, intent := range []dialog.Intent{
		{Operation: dialog.OpList, Kind: dialog.KindCustomer},
		{Operation: dialog.OpList, Kind: dialog.KindProduct},
		{Operation: dialog.OpList, Kind: dialog.KindSale},
		{Operation: dialog.OpList, Kind: dialog.KindInvoice},
		{Operation: dialog.OpSearch, Kind: dialog.KindProduct},
	} {
		var e dialog.Entities
		if intent.Operation == dialog.OpSearch {
			e = entities("name", "caja")
		}
		out := Resolver{}.Resolve(intent, e)
		if out.Action == nil {
			t.Fatalf("%v: expected action, got %+v", intent, out.Result)
		}
		if out.Action.RequiresConfirmation {
			t.Fatalf("%v: read-only operation must not require confirmation", intent)
		}
	}
}

func TestResolve_MutationsRequireConfirmation(t *testing.T) {
	for _, c := range []struct {
		intent dialog.Intent
		e      dialog.Entities
	}{
		{dialog.Intent{Operation: dialog.OpCreate, Kind: dialog.KindProduct}, entities("name", "Caja", "price", "12.5")},
		{dialog.Intent{Operation: dialog.OpUpdate, Kind: dialog.KindCustomer}, entities("id", "3", "phone", "555")},
		{dialog.Intent{Operation: dialog.OpDelete, Kind: dialog.KindProduct}, entities("id", "9")},
		{dialog.Intent{Operation: dialog.OpCreate, Kind: dialog.KindSale}, entities("customer_id", "1", "product_id", "2", "quantity", "3")},
		{dialog.Intent{Operation: dialog.OpCreate, Kind: dialog.KindInvoice}, entities("sale_id", "7")},
	} {
		out := Resolver{}.Resolve(c.intent, c.e)
		if out.Action == nil {
			t.Fatalf("%v: expected action, got %+v", c.intent, out.Result)
		}
		if !out.Action.RequiresConfirmation {
			t.Fatalf("%v: mutation must require confirmation", c.intent)
		}
	}
}

func TestResolve_MissingRequiredFields(t *testing.T) {
	out := Resolver{}.Resolve(
		dialog.Intent{Operation: dialog.OpCreate, Kind: dialog.KindCustomer},
		entities("email", "juan@example.com"),
	)
	if out.Result == nil {
		t.Fatal("expected error result for missing name")
	}
	if out.Result.Status != dialog.StatusError {
		t.Fatalf("expected error status, got %v", out.Result.Status)
	}
	if !strings.Contains(out.Result.Message, "name") {
		t.Fatalf("message should name the missing field: %q", out.Result.Message)
	}
}

func TestResolve_IllTypedFields(t *testing.T) {
	out := Resolver{}.Resolve(
		dialog.Intent{Operation: dialog.OpCreate, Kind: dialog.KindSale},
		entities("customer_id", "juan", "product_id", "2", "quantity", "three"),
	)
	if out.Result == nil {
		t.Fatal("expected error result for ill-typed fields")
	}
	msg := out.Result.Message
	if !strings.Contains(msg, "customer_id") || !strings.Contains(msg, "quantity") {
		t.Fatalf("message should name both invalid fields: %q", msg)
	}
}

func TestResolve_SearchNeedsAtLeastOneCriterion(t *testing.T) {
	out := Resolver{}.Resolve(dialog.Intent{Operation: dialog.OpSearch, Kind: dialog.KindCustomer}, dialog.Entities{})
	if out.Result == nil || out.Result.Status != dialog.StatusError {
		t.Fatalf("expected error result, got %+v", out)
	}
}

func TestResolve_UpdateNeedsAFieldToChange(t *testing.T) {
	out := Resolver{}.Resolve(dialog.Intent{Operation: dialog.OpUpdate, Kind: dialog.KindProduct}, entities("id", "5"))
	if out.Result == nil || out.Result.Status != dialog.StatusError {
		t.Fatalf("bare update must ask what to change, got %+v", out)
	}
	if !strings.Contains(out.Result.Message, "at least one of") {
		t.Fatalf("message should list the updatable fields: %q", out.Result.Message)
	}

	out = Resolver{}.Resolve(dialog.Intent{Operation: dialog.OpUpdate, Kind: dialog.KindProduct}, entities("id", "5", "stock", "12"))
	if out.Action == nil {
		t.Fatalf("update with a field must resolve, got %+v", out.Result)
	}
	if out.Action.Params["stock"] != "12" {
		t.Fatalf("unexpected params %+v", out.Action.Params)
	}

	out = Resolver{}.Resolve(dialog.Intent{Operation: dialog.OpUpdate, Kind: dialog.KindCustomer}, entities("id", "3"))
	if out.Result == nil || out.Result.Status != dialog.StatusError {
		t.Fatalf("bare customer update must ask what to change, got %+v", out)
	}
}

func TestResolve_UnsupportedPairFallsThroughToChat(t *testing.T) {
	out := Resolver{}.Resolve(dialog.Intent{Operation: dialog.OpDelete, Kind: dialog.KindInvoice}, entities("id", "1"))
	if out.Action == nil {
		t.Fatalf("expected chat action, got %+v", out.Result)
	}
	if out.Action.Intent.Operation != dialog.OpGeneralChat {
		t.Fatalf("expected general_chat, got %v", out.Action.Intent.Operation)
	}
	if out.Action.RequiresConfirmation {
		t.Fatal("chat must not require confirmation")
	}
}

func TestResolve_UnknownStaysUnknown(t *testing.T) {
	out := Resolver{}.Resolve(dialog.UnknownIntent(), dialog.Entities{})
	if out.Action == nil || out.Action.Intent.Operation != dialog.OpUnknown {
		t.Fatalf("expected unknown action, got %+v", out)
	}
}

func TestResolve_UnknownFieldsDropped(t *testing.T) {
	out := Resolver{}.Resolve(
		dialog.Intent{Operation: dialog.OpCreate, Kind: dialog.KindCustomer},
		entities("name", "Ana", "favorite_color", "blue"),
	)
	if out.Action == nil {
		t.Fatalf("expected action, got %+v", out.Result)
	}
	if _, ok := out.Action.Params["favorite_color"]; ok {
		t.Fatal("fields outside the operation spec must be dropped")
	}
}
