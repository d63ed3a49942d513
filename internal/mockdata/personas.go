// Package mockdata synthesizes personas, preference records, and insights
// without any external calls. It is the fallback path when the completion
// provider fails outright, and the fast path for tests and offline use.
package mockdata

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mariana/concept-panel/internal/types"
)

var firstNames = []string{
	"Emma", "Liam", "Olivia", "Noah", "Ava", "Ethan", "Sophia", "Mason", "Isabella", "William",
	"Mia", "James", "Charlotte", "Benjamin", "Amelia", "Lucas", "Harper", "Henry", "Evelyn", "Alexander",
	"Abigail", "Michael", "Emily", "Daniel", "Elizabeth", "Matthew", "Mila", "Aiden", "Ella", "Jackson",
	"Madison", "David", "Scarlett", "Joseph", "Victoria", "Samuel", "Aria", "John", "Grace", "Owen",
	"Chloe", "Wyatt", "Camila", "Jack", "Penelope", "Luke", "Riley", "Jayden", "Layla", "Dylan",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
	"Walker", "Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
	"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell", "Carter", "Roberts",
}

var lifestyles = []string{
	"Health-conscious and active lifestyle",
	"Family-oriented and community-focused",
	"Tech-savvy urban professional",
	"Budget-conscious value seeker",
	"Premium quality enthusiast",
	"Environmentally conscious consumer",
	"Social media influencer lifestyle",
	"Traditional and brand loyal",
	"Adventure-seeking and spontaneous",
	"Minimalist and efficiency-focused",
}

var interestPool = []string{
	"Fitness and wellness", "Cooking and food", "Travel and exploration", "Technology and gadgets",
	"Art and culture", "Sports and recreation", "Fashion and style", "Music and entertainment",
	"Reading and learning", "Gardening and nature", "Gaming and digital entertainment",
	"Photography and visual arts", "Social causes and volunteering", "DIY and crafts",
	"Financial planning and investment",
}

var shoppingBehaviors = []string{
	"Researches extensively before purchasing",
	"Impulse buyer influenced by promotions",
	"Brand loyal and prefers familiar products",
	"Price-sensitive and comparison shops",
	"Values convenience and quick purchases",
	"Seeks recommendations from others",
	"Prefers online shopping",
	"Enjoys in-store browsing experience",
	"Bulk buyer for value savings",
	"Trend-follower and early adopter",
}

// GeneratePersonas synthesizes count personas drawn from the demographic
// constraints. Names may repeat across personas; identity is the UUID.
func GeneratePersonas(demographics types.DemographicInput, count int) []types.Persona {
	personas := make([]types.Persona, 0, count)

	for i := 0; i < count; i++ {
		age := pickAge(demographics)

		numInterests := rand.Intn(4) + 2 // 2-5 interests
		interests := make([]string, 0, numInterests)
		for len(interests) < numInterests {
			candidate := interestPool[rand.Intn(len(interestPool))]
			if !contains(interests, candidate) {
				interests = append(interests, candidate)
			}
		}

		personas = append(personas, types.Persona{
			ID:                     uuid.New().String(),
			Name:                   firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))],
			Age:                    age,
			Gender:                 pick(demographics.Genders),
			Location:               pick(demographics.Locations),
			Income:                 pick(demographics.IncomeRanges),
			Education:              pick(demographics.EducationLevels),
			Lifestyle:              lifestyles[rand.Intn(len(lifestyles))],
			Interests:              interests,
			ShoppingBehavior:       shoppingBehaviors[rand.Intn(len(shoppingBehaviors))],
			TechSavviness:          pick(types.AttributeLevels),
			EnvironmentalAwareness: pick(types.AttributeLevels),
			BrandLoyalty:           pick(types.AttributeLevels),
			PriceSensitivity:       pick(types.AttributeLevels),
		})
	}

	return personas
}

// pickAge selects an age uniformly from a randomly chosen requested range.
// A numeric min/max override takes precedence over the range list.
func pickAge(demographics types.DemographicInput) int {
	if demographics.AgeMin > 0 && demographics.AgeMax >= demographics.AgeMin {
		return demographics.AgeMin + rand.Intn(demographics.AgeMax-demographics.AgeMin+1)
	}
	if len(demographics.AgeRanges) == 0 {
		return 18 + rand.Intn(11)
	}

	selected := demographics.AgeRanges[rand.Intn(len(demographics.AgeRanges))]
	minAge, maxAge := ParseAgeRange(selected)
	return minAge + rand.Intn(maxAge-minAge+1)
}

// ParseAgeRange parses range labels like "25-34", "65+", or "40" into
// inclusive bounds. An open or missing upper bound defaults to min+10.
func ParseAgeRange(label string) (minAge, maxAge int) {
	parts := strings.SplitN(label, "-", 2)

	minAge, _ = strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(parts[0]), "+"))
	if minAge <= 0 {
		minAge = 18
	}

	maxAge = minAge + 10
	if len(parts) == 2 {
		if parsed, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil && parsed >= minAge {
			maxAge = parsed
		}
	}
	return minAge, maxAge
}

func pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[rand.Intn(len(options))]
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
