package testutil

import (
	"path"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/specialistvlad/scenepack/internal/fsutil"
	"github.com/specialistvlad/scenepack/internal/includes"
	"github.com/stretchr/testify/require"
)

// IndexTemplate is the index.html written by WriteRuntime.
const IndexTemplate = `<html>
<head>
<style><!-- GDJS_CUSTOM_STYLE --></style>
<!-- GDJS_CODE_FILES -->
</head>
<body><!-- GDJS_CUSTOM_HTML --></body>
</html>
`

// ExtensionFile is the extension file written by WriteRuntime, relative to
// the Extensions directory.
const ExtensionFile = "Physics/physicsruntime.js"

// WriteRuntime writes a fake runtime library into dir: every runtime
// prerequisite, the index template and one extension file. Each file holds
// a comment naming it.
func WriteRuntime(t *testing.T, fsys billy.Filesystem, dir string) {
	t.Helper()
	for _, f := range includes.Runtime {
		require.NoError(t, fsutil.WriteFile(fsys, path.Join(dir, f), []byte("// "+f+"\n")))
	}
	require.NoError(t, fsutil.WriteFile(fsys, path.Join(dir, "index.html"), []byte(IndexTemplate)))
	require.NoError(t, fsutil.WriteFile(fsys, path.Join(dir, "Extensions", ExtensionFile), []byte("// "+ExtensionFile+"\n")))
}
