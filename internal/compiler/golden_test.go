package compiler

import (
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// Golden scenarios are stored as txtar archives: one "in" file holding
// the source, one "want" file holding substrings every line of which
// must appear somewhere in the compiled output. This mirrors the
// table-driven archive format go/types' own check_test.go uses for its
// fixtures, adapted to a single compiled-output check rather than a
// per-position error table.
var goldenArchives = []string{
	`
-- in --
return 1 + 2;
-- want --
return 3;
`,
	`
-- in --
let x = arg + 0;
return x;
-- want --
return arg0;
`,
	`
-- in --
let x = 1;
if (arg) {
	x = 2;
} else {
	x = 3;
}
return x;
-- want --
phi
`,
}

func TestGoldenScenarios(t *testing.T) {
	for i, raw := range goldenArchives {
		ar := txtar.Parse([]byte(raw))
		var in, want string
		for _, f := range ar.Files {
			switch f.Name {
			case "in":
				in = string(f.Data)
			case "want":
				want = string(f.Data)
			}
		}
		if in == "" || want == "" {
			t.Fatalf("scenario %d: malformed archive, missing in/want section", i)
		}

		u := Compile("golden.son", in)
		if u.Err != nil {
			t.Fatalf("scenario %d: unexpected compile error: %v", i, u.Err)
		}
		for _, line := range strings.Split(strings.TrimSpace(want), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !strings.Contains(u.Output, line) {
				t.Errorf("scenario %d: output missing expected substring %q\noutput:\n%s", i, line, u.Output)
			}
		}
	}
}
