//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "storefront-api"
	ConsumerName = "storefront-web"

	StateCatalogBaseline = "catalog baseline"
	StateProductExists   = "product 6f1c2b8e exists with 5 units in stock"
	StateProductMissing  = "no product 00000000"
	StateCartUnderfunded = "customer 3d9a7c41 holds 2 units and has no balance"
	StateCartFunded      = "customer 3d9a7c41 holds 2 units and has 300 balance"
)

const (
	ExampleProductPrice    = 100.0
	ExampleProductStock    = 5
	ExampleProductCategory = "tools"
	ExampleCartQuantity    = 2
	ExampleFundedBalance   = 300.0
)

const (
	ExistingProductID = "6f1c2b8e-4a57-4d3e-9b0a-2f6c7e1d9a10"
	MissingProductID  = "00000000-0000-4000-8000-000000000000"
	ExistingCustomer  = "3d9a7c41-8e2b-4f60-a1d5-7c3e9b2f4a88"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleProductPayload is the create request the consumer sends.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"price":        ExampleProductPrice,
		"category":     ExampleProductCategory,
		"initialStock": ExampleProductStock,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
