package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	httpadapter "ventia/internal/adapter/http"
	openaillm "ventia/internal/adapter/llm/openai"
	metricsinmem "ventia/internal/adapter/metrics/inmemory"
	gormrepo "ventia/internal/adapter/repo/gorm"
	"ventia/internal/adapter/repo/memory"
	"ventia/internal/app/converse"
	"ventia/internal/app/execute"
	"ventia/internal/app/extract"
	"ventia/internal/app/history"
	"ventia/internal/app/ports"
	"ventia/internal/app/resolve"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	repos := mustBuildRepos()
	completer := buildCompleterFromEnv()
	recorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		ChatUC: converse.UseCase{
			Sessions:  repos.sessions,
			Turns:     repos.turns,
			Extractor: extract.Extractor{LLM: completer},
			Resolver:  resolve.Resolver{},
			Executor: execute.Executor{
				Customers: repos.customers,
				Products:  repos.products,
				Sales:     repos.sales,
				Invoices:  repos.invoices,
				Tx:        repos.tx,
				LLM:       completer,
				Now:       time.Now,
			},
			Metrics: recorder,
			Locks:   converse.NewSessionLocks(),
			Now:     time.Now,
		},
		HistoryUC: history.UseCase{Turns: repos.turns},
		KPI:       recorder,
	}

	addr := envOr("VENTIA_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("ventia server listening on %s (store: %s)", addr, repos.kind)
	s.Spin()
}

type repoSet struct {
	kind      string
	customers ports.CustomerRepository
	products  ports.ProductRepository
	sales     ports.SaleRepository
	invoices  ports.InvoiceRepository
	sessions  ports.SessionRepository
	turns     ports.TurnRepository
	tx        ports.TxManager
}

// mustBuildRepos wires the postgres-backed repositories when a DSN is
// configured and falls back to the in-memory store otherwise.
func mustBuildRepos() repoSet {
	dsn := strings.TrimSpace(os.Getenv("VENTIA_DB_DSN"))
	if dsn == "" {
		store := memory.NewStore()
		go pruneIdleSessions(store)
		return repoSet{
			kind:      "memory",
			customers: memory.NewCustomerRepo(store),
			products:  memory.NewProductRepo(store),
			sales:     memory.NewSaleRepo(store),
			invoices:  memory.NewInvoiceRepo(store),
			sessions:  memory.NewSessionRepo(store),
			turns:     memory.NewTurnRepo(store),
			tx:        memory.NewTxManager(store),
		}
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	migrationsDir := envOr("VENTIA_MIGRATIONS_DIR", "./migrations")
	if err := gormrepo.ApplyMigrations(context.Background(), db, migrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	return repoSet{
		kind:      "postgres",
		customers: gormrepo.NewCustomerRepo(db),
		products:  gormrepo.NewProductRepo(db),
		sales:     gormrepo.NewSaleRepo(db),
		invoices:  gormrepo.NewInvoiceRepo(db),
		sessions:  gormrepo.NewSessionRepo(db),
		turns:     gormrepo.NewTurnRepo(db),
		tx:        gormrepo.NewTxManager(db),
	}
}

func buildCompleterFromEnv() openaillm.Completer {
	return openaillm.NewCompleter(openaillm.Config{
		BaseURL: envOr("VENTIA_LLM_BASE_URL", "http://localhost:11434/v1"),
		APIKey:  envOr("VENTIA_LLM_API_KEY", "ollama"),
		Model:   envOr("VENTIA_LLM_MODEL", "llama3"),
		Timeout: time.Duration(intEnv("VENTIA_LLM_TIMEOUT_SECONDS", 60)) * time.Second,
	})
}

func pruneIdleSessions(store *memory.Store) {
	maxIdle := time.Duration(intEnv("VENTIA_SESSION_IDLE_MINUTES", 30)) * time.Minute
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for now := range ticker.C {
		store.PruneIdle(maxIdle, now)
	}
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
