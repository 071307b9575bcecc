package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/travel-journal/backend/testutil"
)

// TestMain brings the test database schema up to date once for the whole
// package. Without TEST_DATABASE_URL every test skips on its own.
func TestMain(m *testing.M) {
	if _, err := testutil.Migrate(context.Background()); err != nil {
		log.Fatalf("repo TestMain: %v", err)
	}
	os.Exit(m.Run())
}
