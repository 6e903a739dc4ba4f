package core

type BuildMode int

const (
	ModeFull BuildMode = iota
	ModeWatch
)

func (m BuildMode) String() string {
	if m == ModeWatch {
		return "watch"
	}
	return "full"
}

// ShouldRelocate reports whether staged component files may be moved and the
// staging directory removed. Watch rebuilds may still be writing into it.
func ShouldRelocate(mode BuildMode) bool {
	return mode == ModeFull
}
