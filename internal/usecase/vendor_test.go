package usecase

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/prism/internal/adapters/fs"
)

func TestMirrorVendor(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/heroicons/24/solid/sun.svg", "<svg/>")
	writeFile(t, root, "node_modules/heroicons/package.json", `{"name":"heroicons"}`)

	results := MirrorVendor(fs.NewOSFileSystem(),
		filepath.Join(root, "node_modules"),
		filepath.Join(root, "dist", "vendor"),
		[]string{"heroicons", "swiper"},
	)

	require.Len(t, results, 2)
	assert.Equal(t, VendorResult{Package: "heroicons"}, results[0])
	assert.Equal(t, VendorResult{Package: "swiper", Missing: true}, results[1])
	assert.Equal(t, "<svg/>", readFile(t, root, "dist/vendor/heroicons/24/solid/sun.svg"))
}

func TestMirrorVendor_NothingToCopy(t *testing.T) {
	root := t.TempDir()
	results := MirrorVendor(fs.NewOSFileSystem(), filepath.Join(root, "node_modules"), filepath.Join(root, "dist", "vendor"), nil)

	assert.Empty(t, results)
	assert.NoDirExists(t, filepath.Join(root, "dist", "vendor"))
}
