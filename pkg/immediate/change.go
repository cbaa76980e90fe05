package immediate

// BeginChangeCheck starts counting user edits reported by widget calls.
// Checks do not nest: beginning a check discards any count in progress.
func (b *Builder) BeginChangeCheck() {
	b.changeCount = 0
}

// EndChangeCheck stops counting and reports whether any widget call since
// BeginChangeCheck returned a user edit.
func (b *Builder) EndChangeCheck() bool {
	changed := b.changeCount > 0
	b.changeCount = -1
	return changed
}

func (b *Builder) countChange() {
	if b.changeCount >= 0 {
		b.changeCount++
	}
}
