package domain

// Menu is one company's menu document: category key -> category.
type Menu map[string]MenuCategory

type MenuCategory struct {
	Name  string     `json:"name"`
	Desc  string     `json:"desc,omitempty"`
	Items []MenuItem `json:"items"`
}

type MenuItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
	Image string `json:"image,omitempty"`
}

// DefaultMenu returns the built-in category tree served to companies
// that have never saved a menu of their own.
func DefaultMenu() Menu {
	return Menu{
		"hot": {
			Name: "Hot Drinks",
			Desc: "Freshly brewed, served hot",
			Items: []MenuItem{
				{ID: "karak", Name: "Karak Tea"},
				{ID: "tea", Name: "Black Tea"},
				{ID: "green-tea", Name: "Green Tea"},
				{ID: "coffee", Name: "Arabic Coffee"},
				{ID: "espresso", Name: "Espresso"},
			},
		},
		"cold": {
			Name: "Cold Drinks",
			Desc: "Chilled and iced",
			Items: []MenuItem{
				{ID: "water", Name: "Water"},
				{ID: "iced-tea", Name: "Iced Tea"},
				{ID: "iced-coffee", Name: "Iced Coffee"},
			},
		},
	}
}

// Valid reports whether a decoded menu document is usable as a menu
// tree. A nil map or one without a single category is not.
func (m Menu) Valid() bool { return len(m) > 0 }
