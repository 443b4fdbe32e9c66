package metadata

// InvertedIndex accelerates metadata filtering for equality/in queries by
// maintaining key/value posting lists as Roaring bitmaps.
//
// Supported operators for compilation:
// - OpEqual
// - OpIn
//
// Other operators fall back to evaluating the FilterSet per document.
type InvertedIndex struct {
	// key -> valueKey -> ids
	fields map[string]map[string]*Bitmap
}

// NewInvertedIndex creates an empty inverted index.
func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{fields: make(map[string]map[string]*Bitmap)}
}

// Add indexes the document's key/value pairs under id. Values of
// unsupported kinds are skipped.
func (ix *InvertedIndex) Add(id uint32, doc Document) {
	if ix == nil || doc == nil {
		return
	}
	for k, v := range doc {
		vk, ok := valueKey(v)
		if !ok {
			continue
		}
		vm, ok := ix.fields[k]
		if !ok {
			vm = make(map[string]*Bitmap)
			ix.fields[k] = vm
		}
		ids, ok := vm[vk]
		if !ok {
			ids = NewBitmap()
			vm[vk] = ids
		}
		ids.Add(id)
	}
}

// Remove drops the document's postings for id.
func (ix *InvertedIndex) Remove(id uint32, doc Document) {
	if ix == nil || doc == nil {
		return
	}
	for k, v := range doc {
		vk, ok := valueKey(v)
		if !ok {
			continue
		}
		vm, ok := ix.fields[k]
		if !ok {
			continue
		}
		ids, ok := vm[vk]
		if !ok {
			continue
		}
		ids.Remove(id)
		if ids.IsEmpty() {
			delete(vm, vk)
		}
		if len(vm) == 0 {
			delete(ix.fields, k)
		}
	}
}

// Compile attempts to compile a FilterSet into a fast membership test using
// the posting lists. If any filter uses an operator the index cannot serve,
// ok=false and the caller must evaluate the FilterSet directly.
func (ix *InvertedIndex) Compile(fs *FilterSet) (fn func(id uint32) bool, ok bool) {
	if ix == nil || fs == nil || len(fs.Filters) == 0 {
		return nil, false
	}

	var acc *Bitmap

	for _, f := range fs.Filters {
		var candidate *Bitmap

		switch f.Operator {
		case OpEqual:
			candidate = ix.postings(f.Key, f.Value)

		case OpIn:
			values, isSlice := f.Value.([]any)
			if !isSlice {
				return nil, false
			}
			candidate = NewBitmap()
			for _, v := range values {
				if ids := ix.postings(f.Key, v); ids != nil {
					candidate.Or(ids)
				}
			}

		default:
			return nil, false
		}

		if candidate == nil || candidate.IsEmpty() {
			// Key/value doesn't exist; fast path to always-false.
			return func(uint32) bool { return false }, true
		}

		if acc == nil {
			acc = candidate.Clone()
		} else {
			acc.And(candidate)
		}
	}

	if acc == nil {
		return nil, false
	}
	return acc.Contains, true
}

func (ix *InvertedIndex) postings(key string, value any) *Bitmap {
	vk, ok := valueKey(value)
	if !ok {
		return nil
	}
	vm, ok := ix.fields[key]
	if !ok {
		return nil
	}
	return vm[vk]
}
