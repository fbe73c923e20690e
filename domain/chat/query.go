package chat

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Order struct {
	Column    string
	Direction Direction
}

// ListOptions selects rows of a table: equality filters, one sort column
// and an optional limit.
type ListOptions struct {
	Where   map[string]string
	OrderBy *Order
	Limit   int
}

func OrderBy(column string, direction Direction) *Order {
	return &Order{Column: column, Direction: direction}
}
