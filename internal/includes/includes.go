// Package includes implements the ordered, duplicate-free list of files a
// generated bundle loads.
package includes

// Runtime is the fixed list of runtime library files every bundle loads,
// in load order.
var Runtime = []string{
	"libs/pixi.js",
	"libs/jshashtable.js",
	"libs/hshg.js",
	"gd.js",
	"commontools.js",
	"runtimeobject.js",
	"runtimescene.js",
	"polygon.js",
	"force.js",
	"layer.js",
	"timer.js",
	"imagemanager.js",
	"runtimegame.js",
	"variable.js",
	"variablescontainer.js",
	"runtimeautomatism.js",
	"spriteruntimeobject.js",
	"soundmanager.js",
	"runtimescenetools.js",
	"inputtools.js",
	"objecttools.js",
	"cameratools.js",
	"soundtools.js",
	"storagetools.js",
	"stringtools.js",
}

// List keeps insertion order and ignores duplicates.
type List struct {
	items []string
	seen  map[string]struct{}
}

// New returns a list holding files, duplicates removed.
func New(files ...string) *List {
	l := &List{seen: make(map[string]struct{})}
	l.Add(files...)
	return l
}

// NewRuntime returns a list seeded with the runtime library files.
func NewRuntime() *List {
	return New(Runtime...)
}

// Add appends the files not already present. Empty names are ignored.
func (l *List) Add(files ...string) {
	for _, f := range files {
		if f == "" {
			continue
		}
		if _, ok := l.seen[f]; ok {
			continue
		}
		l.seen[f] = struct{}{}
		l.items = append(l.items, f)
	}
}

// Contains reports whether f is in the list.
func (l *List) Contains(f string) bool {
	_, ok := l.seen[f]
	return ok
}

// Len returns the number of files.
func (l *List) Len() int {
	return len(l.items)
}

// Files returns a copy of the files in order.
func (l *List) Files() []string {
	return append([]string(nil), l.items...)
}
