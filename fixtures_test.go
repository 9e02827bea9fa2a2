package urlform_test

import (
	"math/big"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/go-cmp/cmp"
)

// Comparer for MyDate type.
var MyDateComparer = cmp.Comparer(func(x, y MyDate) bool {
	return time.Time(x).Equal(time.Time(y))
})

// Comparers for arbitrary precision numbers, which hold unexported state.
var (
	BigIntComparer = cmp.Comparer(func(x, y *big.Int) bool {
		if x == nil || y == nil {
			return x == y
		}
		return x.Cmp(y) == 0
	})
	DecimalComparer = cmp.Comparer(func(x, y *apd.Decimal) bool {
		if x == nil || y == nil {
			return x == y
		}
		return x.Cmp(y) == 0
	})
)

type Person struct {
	Name     string   `form:"name"`
	Age      int      `form:"age,omitempty"`
	Pronouns []string `form:"pronouns"`
}

type ComplexPerson struct {
	ID        int      `form:"id"`
	Name      string   `form:"name"`
	Age       int      `form:"age,omitempty"`
	Pronouns  []string `form:"pronouns,omitempty"`
	CreatedAt MyDate   `form:"created_at"`
	Private   string   `form:"-"`
	Optional  *string  `form:"optional,omitempty"`
}

type IgnoredFieldsForm struct {
	Public  string `form:"public"`
	Private string `form:"-"`
	Ignored string `form:",ignore"`
	NoTag   string
	Empty   string `form:""`
	Omitted string `form:",omitempty"`
	Complex MyDate `form:"complex,omitempty"`
}

type User struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
}

type Customer struct {
	FirstName string   `form:"first_name"`
	LastName  string   `form:"last_name"`
	Emails    []string `form:"emails"`
}

type Meal struct {
	Bread  string `form:"bread"`
	Cheese string `form:"cheese"`
}

type Numbers struct {
	First  uint `form:"first"`
	Second uint `form:"second"`
}

type Account struct {
	Name    string  `form:"name"`
	Address Address `form:"address"`
}

type Address struct {
	Street string `form:"street"`
	City   string `form:"city"`
}

type QueryParameters struct {
	Page  uint32  `form:"page"`
	Name  string  `form:"name"`
	Sort  *Letter `form:"sort"`
	Limit *int    `form:"limit"`
}

type MyDate time.Time

func (d MyDate) MarshalForm() (string, error) {
	return time.Time(d).Format("2006.01.02"), nil
}

func (d *MyDate) UnmarshalForm(b string) error {
	t, err := time.Parse("2006.01.02", b)
	if err != nil {
		return err
	}
	*d = MyDate(t)
	return nil
}

// Letter is a unit enum with the variants A, B and C.
type Letter int

const (
	A Letter = iota
	B
	C
)

func (Letter) FormVariants() []string {
	return []string{"A", "B", "C"}
}

// Colour is a unit enum whose values are its variant names.
type Colour string

func (Colour) FormVariants() []string {
	return []string{"red", "green", "blue"}
}

// Polygon is an enum variant carrying data.
type Polygon struct {
	Sides int
}

func (Polygon) FormVariants() []string {
	return []string{"Polygon"}
}

// Marker is a unit struct.
type Marker struct{}

func intPointer(i int) *int {
	return &i
}

func stringPointer(s string) *string {
	return &s
}

func letterPointer(l Letter) *Letter {
	return &l
}
