package static

import (
	"io/fs"
	"testing"
)

func TestEmbeddedAssets(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"css/launchpad.css", "js/countdown.js", "js/notify.js", "js/effects.js"} {
		data, err := fs.ReadFile(FS, name)
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}
