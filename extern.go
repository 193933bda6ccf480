package hostref

// externBox owns host-external opaque content plus its host-info slot. The
// payload's type is unknown even to this layer; it is never downcast here.
//
// Unlike cellBox there is no borrow flag: this layer hands out the payload
// and host info by value and never lends a mutable view into the box, so no
// aliasing conflict can arise.
type externBox struct {
	payload any
	info    any
}

func newExternBox(payload any) *externBox {
	return &externBox{payload: payload}
}

func (b *externBox) data() any {
	return b.payload
}

func (b *externBox) hostInfo() any {
	return b.info
}

func (b *externBox) setHostInfo(info any) {
	b.info = info
}
