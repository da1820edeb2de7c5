package gles

// Versioned tracks whether CPU side data changed since it was last uploaded.
// version increments exactly when needsUpdate goes from false to true.
type Versioned struct {
	needsUpdate bool
	version     uint64
}

// NewVersioned starts dirty, so the first upload always happens.
func NewVersioned() Versioned {
	return Versioned{needsUpdate: true}
}

func (v *Versioned) NeedsUpdate() bool {
	return v.needsUpdate
}

func (v *Versioned) Version() uint64 {
	return v.version
}

// MarkDirty flags the data as modified. Repeated calls while dirty are no-ops.
func (v *Versioned) MarkDirty() {
	if !v.needsUpdate {
		v.needsUpdate = true
		v.version++
	}
}

func (v *Versioned) MarkClean() {
	v.needsUpdate = false
}

func (v *Versioned) SetNeedsUpdate(dirty bool) {
	if dirty {
		v.MarkDirty()
		return
	}
	v.MarkClean()
}
