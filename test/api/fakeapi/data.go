/*
Copyright 2026 the API Check Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fakeapi

import (
	"fmt"
	"time"
)

const (
	// OrgLogin is the only organization served.
	OrgLogin = "cucumber"
	// OrgID is the organization's numeric id.
	OrgID = 320565
	// CharacterCount is the size of the character catalogue.
	CharacterCount = 194
	// GryffindorID is the id of Gryffindor house.
	GryffindorID = "5a05e2b252f721a3cf2ea33f"
)

type Owner struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
	Type  string `json:"type"`
}

type Organization struct {
	Login       string `json:"login"`
	ID          int64  `json:"id"`
	NodeID      string `json:"node_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PublicRepos int    `json:"public_repos"`
	CreatedAt   string `json:"created_at"`
	Type        string `json:"type"`
}

type Repository struct {
	ID        int64  `json:"id"`
	NodeID    string `json:"node_id"`
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	Private   bool   `json:"private"`
	Owner     Owner  `json:"owner"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type Character struct {
	ID                string `json:"_id"`
	Name              string `json:"name"`
	Role              string `json:"role,omitempty"`
	House             string `json:"house,omitempty"`
	School            string `json:"school,omitempty"`
	MinistryOfMagic   bool   `json:"ministryOfMagic"`
	OrderOfThePhoenix bool   `json:"orderOfThePhoenix"`
	DumbledoresArmy   bool   `json:"dumbledoresArmy"`
	DeathEater        bool   `json:"deathEater"`
	BloodStatus       string `json:"bloodStatus"`
	Species           string `json:"species"`
	Version           int    `json:"__v"`
}

type House struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Mascot      string   `json:"mascot"`
	HeadOfHouse string   `json:"headOfHouse"`
	HouseGhost  string   `json:"houseGhost"`
	Founder     string   `json:"founder"`
	School      string   `json:"school"`
	Members     []string `json:"members"`
	Values      []string `json:"values"`
	Colors      []string `json:"colors"`
	Version     int      `json:"__v"`
}

// HouseMember is the expanded member form returned for a single house.
type HouseMember struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type HouseDetail struct {
	House

	Members []HouseMember `json:"members"`
}

// Catalogue is the data set behind both fakes.
type Catalogue struct {
	Organization Organization
	Repositories []Repository
	Characters   []Character
	Houses       []House
}

//nolint:gochecknoglobals
var repositoryNames = []string{
	"cucumber-ruby", "cucumber-jvm", "cucumber-js", "gherkin", "aruba",
	"cucumber-rails", "common", "docs", "cucumber-expressions",
	"tag-expressions", "messages", "html-formatter", "json-formatter",
	"ci-environment", "cucumber-android", "cucumber-cpp", "godog",
	"cucumber-jvm-scala", "cucumber-jvm-groovy", "cucumber-eclipse",
	"language-service", "vscode", "compatibility-kit", "react-components",
}

type character struct {
	name    string
	house   string
	role    string
	species string
	flags   string
}

// Flags: d Dumbledore's Army, o Order of the Phoenix, m Ministry of Magic,
// e Death Eater.
//
//nolint:gochecknoglobals
var namedCharacters = []character{
	{"Harry Potter", "Gryffindor", "student", "human", "do"},
	{"Hermione Granger", "Gryffindor", "student", "human", "do"},
	{"Ron Weasley", "Gryffindor", "student", "human", "do"},
	{"Albus Dumbledore", "Gryffindor", "Headmaster, Hogwarts", "human", "o"},
	{"Minerva McGonagall", "Gryffindor", "Transfiguration Professor", "human", "o"},
	{"Rubeus Hagrid", "Gryffindor", "Keeper of Keys and Grounds", "half-giant", "o"},
	{"Neville Longbottom", "Gryffindor", "student", "human", "d"},
	{"Ginny Weasley", "Gryffindor", "student", "human", "d"},
	{"Fred Weasley", "Gryffindor", "student", "human", "do"},
	{"George Weasley", "Gryffindor", "student", "human", "do"},
	{"Percy Weasley", "Gryffindor", "Ministry official", "human", "m"},
	{"Lee Jordan", "Gryffindor", "student", "human", "d"},
	{"Dean Thomas", "Gryffindor", "student", "human", "d"},
	{"Seamus Finnigan", "Gryffindor", "student", "human", "d"},
	{"Oliver Wood", "Gryffindor", "student", "human", ""},
	{"Katie Bell", "Gryffindor", "student", "human", "d"},
	{"Angelina Johnson", "Gryffindor", "student", "human", "d"},
	{"Alicia Spinnet", "Gryffindor", "student", "human", "d"},
	{"Colin Creevey", "Gryffindor", "student", "human", "d"},
	{"Lavender Brown", "Gryffindor", "student", "human", "d"},
	{"Parvati Patil", "Gryffindor", "student", "human", "d"},
	{"Sirius Black", "Gryffindor", "", "human", "o"},
	{"James Potter", "Gryffindor", "", "human", "o"},
	{"Lily Potter", "Gryffindor", "", "human", "o"},
	{"Remus Lupin", "Gryffindor", "Defence Against the Dark Arts Professor", "werewolf", "o"},
	{"Peter Pettigrew", "Gryffindor", "", "human", "e"},
	{"Arthur Weasley", "Gryffindor", "Ministry official", "human", "om"},
	{"Molly Weasley", "Gryffindor", "", "human", "o"},
	{"Luna Lovegood", "Ravenclaw", "student", "human", "d"},
	{"Cho Chang", "Ravenclaw", "student", "human", "d"},
	{"Padma Patil", "Ravenclaw", "student", "human", "d"},
	{"Filius Flitwick", "Ravenclaw", "Charms Professor", "part-goblin", ""},
	{"Gilderoy Lockhart", "Ravenclaw", "Defence Against the Dark Arts Professor", "human", ""},
	{"Terry Boot", "Ravenclaw", "student", "human", "d"},
	{"Michael Corner", "Ravenclaw", "student", "human", "d"},
	{"Marietta Edgecombe", "Ravenclaw", "student", "human", ""},
	{"Quirinus Quirrell", "Ravenclaw", "Defence Against the Dark Arts Professor", "human", ""},
	{"Draco Malfoy", "Slytherin", "student", "human", "e"},
	{"Severus Snape", "Slytherin", "Potions Professor", "human", "oe"},
	{"Tom Riddle", "Slytherin", "", "human", ""},
	{"Lucius Malfoy", "Slytherin", "", "human", "e"},
	{"Bellatrix Lestrange", "Slytherin", "", "human", "e"},
	{"Vincent Crabbe", "Slytherin", "student", "human", ""},
	{"Gregory Goyle", "Slytherin", "student", "human", ""},
	{"Pansy Parkinson", "Slytherin", "student", "human", ""},
	{"Horace Slughorn", "Slytherin", "Potions Professor", "human", ""},
	{"Dolores Umbridge", "Slytherin", "Senior Undersecretary", "human", "m"},
	{"Blaise Zabini", "Slytherin", "student", "human", ""},
	{"Regulus Black", "Slytherin", "", "human", "e"},
	{"Cedric Diggory", "Hufflepuff", "student", "human", ""},
	{"Nymphadora Tonks", "Hufflepuff", "Auror", "metamorphmagus", "om"},
	{"Pomona Sprout", "Hufflepuff", "Herbology Professor", "human", ""},
	{"Hannah Abbott", "Hufflepuff", "student", "human", "d"},
	{"Ernie Macmillan", "Hufflepuff", "student", "human", "d"},
	{"Justin Finch-Fletchley", "Hufflepuff", "student", "human", "d"},
	{"Susan Bones", "Hufflepuff", "student", "human", "d"},
	{"Zacharias Smith", "Hufflepuff", "student", "human", "d"},
	{"Newt Scamander", "Hufflepuff", "Magizoologist", "human", ""},
	{"Cornelius Fudge", "", "Minister of Magic", "human", "m"},
	{"Dobby", "", "house-elf", "house-elf", ""},
	{"Kreacher", "", "house-elf", "house-elf", ""},
	{"Griphook", "", "Gringotts goblin", "goblin", ""},
	{"Fleur Delacour", "", "student", "part-veela", "o"},
	{"Viktor Krum", "", "student", "human", ""},
	{"Olympe Maxime", "", "Headmistress, Beauxbatons", "half-giant", ""},
	{"Igor Karkaroff", "", "Headmaster, Durmstrang", "human", "e"},
	{"Rufus Scrimgeour", "", "Minister of Magic", "human", "m"},
	{"Mundungus Fletcher", "", "", "human", "o"},
}

// generatedHouses assigns houses to the unnamed students so that Gryffindor
// stays the largest house.
//
//nolint:gochecknoglobals
var generatedHouses = []string{"Gryffindor", "Ravenclaw", "Slytherin", "Gryffindor", "Hufflepuff", "", "Gryffindor", "Ravenclaw", "Slytherin", "Hufflepuff"}

//nolint:gochecknoglobals
var houseDetails = []House{
	{ID: GryffindorID, Name: "Gryffindor", Mascot: "lion", HeadOfHouse: "Minerva McGonagall", HouseGhost: "Nearly Headless Nick", Founder: "Goderic Gryffindor", Values: []string{"courage", "bravery", "nerve", "chivalry"}, Colors: []string{"scarlet", "gold"}},
	{ID: "5a05da69d45bd0a11bd5e06f", Name: "Ravenclaw", Mascot: "eagle", HeadOfHouse: "Filius Flitwick", HouseGhost: "The Grey Lady", Founder: "Rowena Ravenclaw", Values: []string{"intelligence", "creativity", "learning", "wit"}, Colors: []string{"blue", "bronze"}},
	{ID: "5a05dc8cd45bd0a11bd5e071", Name: "Slytherin", Mascot: "serpent", HeadOfHouse: "Severus Snape", HouseGhost: "The Bloody Baron", Founder: "Salazar Slytherin", Values: []string{"ambition", "cunning", "leadership", "resourcefulness"}, Colors: []string{"green", "silver"}},
	{ID: "5a05dc58d45bd0a11bd5e070", Name: "Hufflepuff", Mascot: "badger", HeadOfHouse: "Pomona Sprout", HouseGhost: "The Fat Friar", Founder: "Helga Hufflepuff", Values: []string{"hard work", "patience", "justice", "loyalty"}, Colors: []string{"yellow", "black"}},
}

// NewCatalogue builds the deterministic data set.
func NewCatalogue() *Catalogue {
	c := &Catalogue{
		Organization: Organization{
			Login:       OrgLogin,
			ID:          OrgID,
			NodeID:      "MDEyOk9yZ2FuaXphdGlvbjMyMDU2NQ==",
			Name:        "Cucumber",
			Description: "BDD testing tools",
			PublicRepos: len(repositoryNames),
			CreatedAt:   "2010-07-12T09:39:45Z",
			Type:        "Organization",
		},
		Repositories: newRepositories(),
		Characters:   newCharacters(),
	}

	c.Houses = newHouses(c.Characters)

	return c
}

func newRepositories() []Repository {
	base := time.Date(2010, time.August, 1, 0, 0, 0, 0, time.UTC)
	owner := Owner{Login: OrgLogin, ID: OrgID, Type: "Organization"}

	repositories := make([]Repository, len(repositoryNames))

	for i, name := range repositoryNames {
		// Pairs of repositories share a creation day at different times.
		created := base.AddDate(0, 0, (i/2)*53).Add(time.Duration(9+(i%2)*8) * time.Hour).Add(time.Duration(i) * time.Minute)
		id := int64(1000000 + i*7919)

		repositories[i] = Repository{
			ID:        id,
			NodeID:    fmt.Sprintf("MDEwOlJlcG9zaXRvcnk%08d", id),
			Name:      name,
			FullName:  OrgLogin + "/" + name,
			Owner:     owner,
			CreatedAt: created.Format(time.RFC3339),
			UpdatedAt: created.AddDate(1, 0, 0).Format(time.RFC3339),
		}
	}

	return repositories
}

func newCharacters() []Character {
	characters := make([]Character, 0, CharacterCount)

	for _, c := range namedCharacters {
		characters = append(characters, newCharacter(len(characters), c))
	}

	for i := 0; len(characters) < CharacterCount; i++ {
		characters = append(characters, newCharacter(len(characters), character{
			name:    fmt.Sprintf("Hogwarts Student %03d", i+1),
			house:   generatedHouses[i%len(generatedHouses)],
			role:    "student",
			species: "human",
		}))
	}

	return characters
}

func newCharacter(index int, c character) Character {
	out := Character{
		ID:          fmt.Sprintf("5a0fa%019x", 0x4ae5ba4cc+index),
		Name:        c.name,
		Role:        c.role,
		House:       c.house,
		BloodStatus: "unknown",
		Species:     c.species,
	}

	if c.house != "" {
		out.School = "Hogwarts School of Witchcraft and Wizardry"
	}

	for _, flag := range c.flags {
		switch flag {
		case 'd':
			out.DumbledoresArmy = true
		case 'o':
			out.OrderOfThePhoenix = true
		case 'm':
			out.MinistryOfMagic = true
		case 'e':
			out.DeathEater = true
		}
	}

	return out
}

func newHouses(characters []Character) []House {
	houses := make([]House, len(houseDetails))

	for i, house := range houseDetails {
		house.School = "Hogwarts School of Witchcraft and Wizardry"
		house.Members = []string{}

		for _, c := range characters {
			if c.House == house.Name {
				house.Members = append(house.Members, c.ID)
			}
		}

		houses[i] = house
	}

	return houses
}

// FindHouse looks up a house by id.
func (c *Catalogue) FindHouse(id string) (House, bool) {
	for _, house := range c.Houses {
		if house.ID == id {
			return house, true
		}
	}

	return House{}, false
}

// Detail expands member ids to member objects, preserving order.
func (c *Catalogue) Detail(house House) HouseDetail {
	names := make(map[string]string, len(c.Characters))

	for _, character := range c.Characters {
		names[character.ID] = character.Name
	}

	members := make([]HouseMember, len(house.Members))

	for i, id := range house.Members {
		members[i] = HouseMember{ID: id, Name: names[id]}
	}

	return HouseDetail{House: house, Members: members}
}
