package catalog

// StaticProducts returns the built-in plant catalogue used for local development and tests.
func StaticProducts() []Product {
	return []Product{
		{ID: "basil-genovese", Name: "Basil Genovese", Edible: true, PriceMinor: 2900, Currency: "SEK", ImageURL: "/static/img/plant.svg",
			Description: "Classic **sweet basil** for pesto. Pinch the tips to keep it bushy."},
		{ID: "monstera-deliciosa", Name: "Monstera Deliciosa", Edible: false, PriceMinor: 34900, Currency: "SEK", ImageURL: "/static/img/plant.svg",
			Description: "Split-leaf climber. Bright, indirect light.\n\n*Not for eating.*"},
		{ID: "cherry-tomato", Name: "Cherry Tomato 'Sweet Million'", Edible: true, PriceMinor: 4900, Currency: "SEK", ImageURL: "/static/img/plant.svg",
			Description: "Prolific trusses of small red fruit. Needs a sunny windowsill or balcony."},
		{ID: "snake-plant", Name: "Snake Plant", Edible: false, PriceMinor: 19900, Currency: "SEK", ImageURL: "/static/img/plant.svg",
			Description: "Thrives on neglect. Water once a month."},
		{ID: "mint-moroccan", Name: "Moroccan Mint", Edible: true, PriceMinor: 2900, Currency: "SEK", ImageURL: "/static/img/plant.svg",
			Description: "Fresh mint for tea. Keep in its own pot, it spreads."},
		{ID: "pothos-golden", Name: "Golden Pothos", Edible: false, PriceMinor: 14900, Currency: "SEK", ImageURL: "/static/img/plant.svg",
			Description: "Trailing vine with marbled leaves."},
		{ID: "chili-habanero", Name: "Chili Habanero", Edible: true, PriceMinor: 5900, Currency: "SEK", ImageURL: "/static/img/plant.svg",
			Description: "Very hot ~~mild~~ peppers. Warmth and plenty of light."},
		{ID: "fiddle-leaf-fig", Name: "Fiddle Leaf Fig", Edible: false, PriceMinor: 44900, Currency: "SEK", ImageURL: "/static/img/plant.svg",
			Description: "Statement tree for bright rooms. Dislikes being moved."},
		{ID: "strawberry-alpine", Name: "Alpine Strawberry", Edible: true, PriceMinor: 3900, Currency: "SEK", ImageURL: "/static/img/plant.svg",
			Description: "Small aromatic berries all summer long."},
		{ID: "peace-lily", Name: "Peace Lily", Edible: false, PriceMinor: 17900, Currency: "SEK", ImageURL: "/static/img/plant.svg",
			Description: "White blooms, droops dramatically when thirsty."},
		{ID: "rosemary", Name: "Rosemary", Edible: true, PriceMinor: 3400, Currency: "SEK", ImageURL: "/static/img/plant.svg",
			Description: "Woody herb for roasts. Let the soil dry between waterings."},
		{ID: "zz-plant", Name: "ZZ Plant", Edible: false, PriceMinor: 22900, Currency: "SEK", ImageURL: "/static/img/plant.svg",
			Description: "Glossy leaves, tolerates low light."},
	}
}
