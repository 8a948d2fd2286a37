package model

// CategoryType indicates whether a category belongs to the income or
// expense namespace.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
)

// UnknownCategoryID is the synthetic bucket for records whose category id
// is not present in the registry. Such records are always accounted for,
// never dropped.
const UnknownCategoryID = "unknown"

// Category represents an entry in the category registry.
type Category struct {
	ID        string
	Name      string
	Icon      string
	Type      CategoryType
	SortOrder int
	IsActive  bool
}

// CategorySet is a read-only category registry partitioned into the
// income and expense namespaces, preserving registration order.
type CategorySet struct {
	byID    map[string]Category
	income  []Category
	expense []Category
}

// NewCategorySet builds a registry from an ordered category list.
func NewCategorySet(categories []Category) *CategorySet {
	set := &CategorySet{byID: make(map[string]Category, len(categories))}
	for _, cat := range categories {
		if _, exists := set.byID[cat.ID]; exists {
			continue
		}
		set.byID[cat.ID] = cat
		switch cat.Type {
		case CategoryTypeIncome:
			set.income = append(set.income, cat)
		case CategoryTypeExpense:
			set.expense = append(set.expense, cat)
		}
	}
	return set
}

// Lookup returns the category for an id, or false when the id is not
// registered.
func (s *CategorySet) Lookup(id string) (Category, bool) {
	cat, ok := s.byID[id]
	return cat, ok
}

// NameFor returns the display name for an id, falling back to "Unknown".
func (s *CategorySet) NameFor(id string) string {
	if cat, ok := s.byID[id]; ok {
		return cat.Name
	}
	return "Unknown"
}

// ByType returns the ordered categories of one namespace.
func (s *CategorySet) ByType(t CategoryType) []Category {
	switch t {
	case CategoryTypeIncome:
		return s.income
	case CategoryTypeExpense:
		return s.expense
	default:
		return nil
	}
}

// FirstOfType returns the first registered category of a namespace.
// Used as the fallback when an import row carries an unresolvable
// category.
func (s *CategorySet) FirstOfType(t CategoryType) (Category, bool) {
	cats := s.ByType(t)
	if len(cats) == 0 {
		return Category{}, false
	}
	return cats[0], true
}

// Len returns the number of registered categories.
func (s *CategorySet) Len() int {
	return len(s.byID)
}

// DefaultCategories returns the seed registry created on first run.
func DefaultCategories() []Category {
	return []Category{
		{ID: "salary", Name: "Salary", Icon: "💼", Type: CategoryTypeIncome, SortOrder: 1, IsActive: true},
		{ID: "freelance", Name: "Freelance", Icon: "🧾", Type: CategoryTypeIncome, SortOrder: 2, IsActive: true},
		{ID: "investments", Name: "Investments", Icon: "📈", Type: CategoryTypeIncome, SortOrder: 3, IsActive: true},
		{ID: "other-income", Name: "Other Income", Icon: "💰", Type: CategoryTypeIncome, SortOrder: 4, IsActive: true},
		{ID: "food", Name: "Food", Icon: "🍽️", Type: CategoryTypeExpense, SortOrder: 1, IsActive: true},
		{ID: "transport", Name: "Transport", Icon: "🚌", Type: CategoryTypeExpense, SortOrder: 2, IsActive: true},
		{ID: "housing", Name: "Housing", Icon: "🏠", Type: CategoryTypeExpense, SortOrder: 3, IsActive: true},
		{ID: "utilities", Name: "Utilities", Icon: "💡", Type: CategoryTypeExpense, SortOrder: 4, IsActive: true},
		{ID: "health", Name: "Health", Icon: "🏥", Type: CategoryTypeExpense, SortOrder: 5, IsActive: true},
		{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Type: CategoryTypeExpense, SortOrder: 6, IsActive: true},
		{ID: "education", Name: "Education", Icon: "📚", Type: CategoryTypeExpense, SortOrder: 7, IsActive: true},
		{ID: "shopping", Name: "Shopping", Icon: "🛍️", Type: CategoryTypeExpense, SortOrder: 8, IsActive: true},
		{ID: "other-expense", Name: "Other", Icon: "📦", Type: CategoryTypeExpense, SortOrder: 9, IsActive: true},
	}
}
