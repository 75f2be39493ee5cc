package arena

// Copy inserts every live entry of src into dest, oldest first, by calling
// [Arena.Create]. Unlike every other operation in this package it is not
// atomic: if a Create fails partway through, Copy stops immediately and
// returns [Error], leaving dest holding whatever entries it had already
// copied.
func Copy(dest, src *Arena) Code {
	for it := src.Begin(); !it.Equal(src.End()); it = it.Next() {
		if code := dest.Create(it.Key(), it.Value()); IsError(code) {
			return Error
		}
	}
	return NoError
}
