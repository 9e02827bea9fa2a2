package urlform_test

import (
	"fmt"
	"os"

	"github.com/tomasbasham/urlform"
)

type Animal int

const (
	Unknown Animal = iota
	Gopher
	Zebra
)

func (Animal) FormVariants() []string {
	return []string{"unknown", "gopher", "zebra"}
}

type Temperature float64

func (t Temperature) MarshalForm() (string, error) {
	return fmt.Sprintf("%.1fC", float64(t)), nil
}

func (t *Temperature) UnmarshalForm(value string) error {
	var f float64
	if _, err := fmt.Sscanf(value, "%fC", &f); err != nil {
		return err
	}
	*t = Temperature(f)
	return nil
}

func Example_enum() {
	type PetOwner struct {
		OwnerName string `form:"owner_name"`
		PetType   Animal `form:"pet_type"`
	}

	owner := PetOwner{
		OwnerName: "Alice",
		PetType:   Gopher,
	}

	data, err := urlform.EncodeToString(owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(data)
	// Output:
	// owner_name=Alice&pet_type=gopher
}

func Example_customMarshal() {
	readings := []urlform.Pair[string, Temperature]{
		{Key: "morning", Value: 12.5},
		{Key: "noon", Value: 21},
	}

	data, err := urlform.EncodeToString(readings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(data)

	var decoded map[string]Temperature
	if err := urlform.DecodeString(data, &decoded); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(decoded["noon"])
	// Output:
	// morning=12.5C&noon=21.0C
	// 21
}

func ExampleMarshal() {
	customer := Customer{
		FirstName: "Jane",
		LastName:  "Doe",
		Emails:    []string{"jane@example.com", "doe@example.com"},
	}

	data, err := urlform.Marshal(customer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(string(data))
	// Output:
	// first_name=Jane&last_name=Doe&emails=jane%40example.com&emails=doe%40example.com
}

func ExampleUnmarshal() {
	data := []byte("bread=baguette&cheese=comt%C3%A9&meat=ham&fat=butter")

	var meal Meal
	if err := urlform.Unmarshal(data, &meal); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("%#v\n", meal)
	// Output:
	// urlform_test.Meal{Bread:"baguette", Cheese:"comté"}
}

func ExampleUnmarshal_pairs() {
	data := []byte("tag=go&tag=forms&page=2")

	var pairs []urlform.Pair[string, string]
	if err := urlform.Unmarshal(data, &pairs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	for _, p := range pairs {
		fmt.Printf("%s: %s\n", p.Key, p.Value)
	}
	// Output:
	// tag: go
	// tag: forms
	// page: 2
}
