package hostref

// borrowFlag tracks a cell's outstanding loans: zero means free, a positive
// count means that many shared readers, and writer means one exclusive
// writer. It is a plain int on purpose: cells are single-goroutine by
// contract (see the package doc), so no atomics are involved and a
// conflicting request fails immediately instead of waiting.
type borrowFlag int

const writer borrowFlag = -1

// share takes a shared loan. It fails only against an exclusive loan.
func (f *borrowFlag) share() bool {
	if *f == writer {
		return false
	}
	*f++
	return true
}

// unshare returns one shared loan.
func (f *borrowFlag) unshare() {
	if *f > 0 {
		*f--
	}
}

// exclusive takes the exclusive loan. It fails against any outstanding loan.
func (f *borrowFlag) exclusive() bool {
	if *f != 0 {
		return false
	}
	*f = writer
	return true
}

// release returns the exclusive loan.
func (f *borrowFlag) release() {
	if *f == writer {
		*f = 0
	}
}

func (f *borrowFlag) writing() bool { return *f == writer }

func (f *borrowFlag) lent() bool { return *f != 0 }
