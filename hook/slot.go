package hook

// Slot is the payload of a single pipeline stage: either absent or present
// with a value. The zero Slot is absent.
type Slot[T any] struct {
	value   T
	present bool
}

// Present returns a slot holding v.
func Present[T any](v T) Slot[T] {
	return Slot[T]{value: v, present: true}
}

// Absent returns an empty slot.
func Absent[T any]() Slot[T] {
	return Slot[T]{}
}

// Get returns the payload and whether the slot is present.
func (s Slot[T]) Get() (T, bool) {
	return s.value, s.present
}

// IsPresent reports whether the slot holds a payload.
func (s Slot[T]) IsPresent() bool {
	return s.present
}

// Kind identifies a stage position in the fixed pipeline order.
type Kind int

const (
	// KindAuthorization injects the bearer Authorization header.
	KindAuthorization Kind = iota
	// KindQuery appends the encoded query string to the URL.
	KindQuery
	// KindJSON encodes a JSON request body.
	KindJSON
	// KindMultipart attaches a multipart/form-data body.
	KindMultipart
	// KindForm encodes an application/x-www-form-urlencoded body.
	KindForm
	// KindResponseSchema validates successful response bodies.
	KindResponseSchema
	// KindErrorSchema validates error response bodies.
	KindErrorSchema
)

// String returns the stage name.
func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindQuery:
		return "query"
	case KindJSON:
		return "json"
	case KindMultipart:
		return "multipart"
	case KindForm:
		return "form"
	case KindResponseSchema:
		return "response_schema"
	case KindErrorSchema:
		return "error_schema"
	default:
		return "unknown"
	}
}
