package tracker

// Kind is the closed set of tracker kinds. A tracker's kind is fixed at
// creation and never changes.
type Kind string

const (
	KindShopping Kind = "SHOPPING" // has price/quantity
	KindTodo     Kind = "TODO"     // simple checkbox
	KindTravel   Kind = "TRAVEL"   // checklist + packing
	KindHabit    Kind = "HABIT"    // calendar grid tracking
	KindNote     Kind = "NOTE"     // free text
)

// Kinds lists all valid tracker kinds.
var Kinds = []Kind{KindShopping, KindTodo, KindTravel, KindHabit, KindNote}

// ValidKind reports whether k is a member of the closed kind set.
func ValidKind(k Kind) bool {
	switch k {
	case KindShopping, KindTodo, KindTravel, KindHabit, KindNote:
		return true
	}
	return false
}

// HasFinancials reports whether the kind carries price/quantity semantics.
func (k Kind) HasFinancials() bool {
	return k == KindShopping || k == KindTravel
}

// Task is a single line item within a tracker.
// Field names follow the persisted JSON shape.
type Task struct {
	// ID is a ULID, unique within the owning tracker. ULIDs sort
	// lexicographically in creation order, so the "created" sort key can
	// compare id strings directly.
	ID string `json:"id"`

	// Text is the task's free text.
	Text string `json:"text"`

	// Completed marks the task done (or, for habits, archived).
	Completed bool `json:"completed"`

	// Value is the unit price or count. Nil means "no value set",
	// which is distinct from zero.
	Value *float64 `json:"value,omitempty"`

	// Quantity multiplies Value. Nil means 1.
	Quantity *int `json:"quantity,omitempty"`

	// CompletedDates holds ISO dates (YYYY-MM-DD) a habit was performed.
	// Conceptually a set: no duplicates, insertion order not significant.
	// Only meaningful when the owning tracker is KindHabit.
	CompletedDates []string `json:"completedDates,omitempty"`
}

// EffectiveValue returns value * quantity with the documented defaults
// (missing value counts as 0, missing quantity as 1).
func (t Task) EffectiveValue() float64 {
	if t.Value == nil {
		return 0
	}
	q := 1
	if t.Quantity != nil {
		q = *t.Quantity
	}
	return *t.Value * float64(q)
}

// Qty returns the task quantity, defaulting to 1 when absent.
func (t Task) Qty() int {
	if t.Quantity == nil {
		return 1
	}
	return *t.Quantity
}

// Tracker is a named collection of tasks (or a note) of one fixed kind.
// Field names follow the persisted JSON shape.
type Tracker struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Kind        Kind   `json:"type"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Currency    string `json:"currency,omitempty"` // meaningful for SHOPPING/TRAVEL
	Tasks       []Task `json:"tasks"`
	CreatedAt   int64  `json:"createdAt"`             // epoch milliseconds
	NoteContent string `json:"noteContent,omitempty"` // meaningful for NOTE kind
}

// TotalValue sums value*quantity over ALL tasks, ignoring any search or
// filter state, so the displayed grand total stays stable while searching.
func (t Tracker) TotalValue() float64 {
	var sum float64
	for _, task := range t.Tasks {
		sum += task.EffectiveValue()
	}
	return sum
}

// CloneTasks returns a fresh copy of the task slice. Mutating operations
// work on copies so callers holding the previous snapshot never observe
// in-place edits.
func (t Tracker) CloneTasks() []Task {
	if t.Tasks == nil {
		return nil
	}
	tasks := make([]Task, len(t.Tasks))
	copy(tasks, t.Tasks)
	return tasks
}

// Icon identifiers form a closed set; unknown identifiers are rejected at
// the repository boundary rather than at render time.
var permittedIcons = map[string]bool{
	"ShoppingCart": true,
	"CheckSquare":  true,
	"Plane":        true,
	"Activity":     true,
	"FileText":     true,
	"LayoutGrid":   true,
	"Calendar":     true,
	"Ghost":        true,
	"Globe":        true,
	"Database":     true,
	"Palette":      true,
	"Image":        true,
	"Search":       true,
	"Wand2":        true,
	"DollarSign":   true,
	"Eye":          true,
}

// ValidIcon reports whether the icon identifier is permitted.
func ValidIcon(icon string) bool {
	return permittedIcons[icon]
}

// DefaultIcon returns the fixed default icon for a kind.
func DefaultIcon(k Kind) string {
	switch k {
	case KindShopping:
		return "ShoppingCart"
	case KindTravel:
		return "Plane"
	case KindHabit:
		return "Activity"
	case KindNote:
		return "FileText"
	default:
		return "CheckSquare"
	}
}

// Colors lists the permitted display color tags, first entry is the default.
var Colors = []string{
	"from-indigo-500 to-purple-500",
	"from-pink-500 to-rose-500",
	"from-emerald-500 to-teal-500",
	"from-amber-500 to-orange-500",
	"from-sky-500 to-blue-500",
	"from-violet-500 to-fuchsia-500",
	"from-lime-500 to-green-500",
	"from-red-500 to-pink-500",
}

// DefaultColor is used when no color tag is supplied.
func DefaultColor() string {
	return Colors[0]
}
