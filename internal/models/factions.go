package models

// Faction is a playable race. Color is a hex RGB string used for markers.
type Faction struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Factions is the catalog of known factions.
var Factions = []Faction{
	{ID: "red-alien", Name: "Eridani Empire", Color: "#C62730"},
	{ID: "blue-alien", Name: "Hydran Progress", Color: "#477B9F"},
	{ID: "green-alien", Name: "Planta", Color: "#3F5D2B"},
	{ID: "yellow-alien", Name: "Descendants of Draco", Color: "#F9C300"},
	{ID: "white-alien", Name: "Mechanema", Color: "#C0C6CB"},
	{ID: "black-alien", Name: "Orion", Color: "#3D3D3D"},
	{ID: "red-human", Name: "Terran Directorate", Color: "#C62730"},
	{ID: "blue-human", Name: "Terran Federation", Color: "#477B9F"},
	{ID: "green-human", Name: "Terran Union", Color: "#3F5D2B"},
	{ID: "yellow-human", Name: "Terran Republic", Color: "#F9C300"},
	{ID: "white-human", Name: "Terran Conglomerate", Color: "#C0C6CB"},
	{ID: "black-human", Name: "Terran Alliance", Color: "#3D3D3D"},
	{ID: "brown-alien", Name: "Rho Indi Syndicate", Color: "#BE6C16"},
	{ID: "pink-alien", Name: "Wardens of Magellan", Color: "#F65EB0"},
	{ID: "white-alien-2", Name: "The Exiles", Color: "#D3D5D7"},
	{ID: "orange-alien", Name: "The Enlightened of Lyra", Color: "#F2802C"},
}

// FactionByID looks up a faction in the catalog.
func FactionByID(id string) (Faction, bool) {
	for _, f := range Factions {
		if f.ID == id {
			return f, true
		}
	}
	return Faction{}, false
}
