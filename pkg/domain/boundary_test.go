package domain_test

import (
	"testing"

	"instructcore/testutil"
)

// The domain package is the public contract surface; it must stay importable
// without dragging internal adapters along.
func TestDomainHasNoInternalImports(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden,
		"pkg/domain must not depend on internal packages")
}
