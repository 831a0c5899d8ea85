package model

import "strings"

type SubCategoryConfig struct {
	Key         string
	Icon        string
	Description string
}

type CategoryConfig struct {
	Icon          string
	Color         string
	Description   string
	Placeholder   string
	SubCategories []SubCategoryConfig
}

var catalog = map[Category]CategoryConfig{
	CategoryHome: {
		Icon:        "🏠",
		Color:       "#4caf50",
		Description: "Tasks related to cleaning, cooking, and home maintenance",
		Placeholder: "e.g., Clean the dragon's lair (my room) 🐉",
	},
	CategoryLearning: {
		Icon:        "📚",
		Color:       "#2196f3",
		Description: "Track progress for studying, coding, or personal growth",
		Placeholder: "e.g., Practice coding for 2 hours today 💻",
		SubCategories: []SubCategoryConfig{
			{Key: SubCategoryDaily, Icon: "📅", Description: "Habits and sessions for today"},
			{Key: SubCategoryMonthly, Icon: "🗓️", Description: "Goals due by the end of the month"},
		},
	},
	CategoryPrayers: {
		Icon:        "🙏",
		Color:       "#9c27b0",
		Description: "Manage prayer times or mindfulness activities",
		Placeholder: "e.g., Evening reflection 🕯️",
		SubCategories: []SubCategoryConfig{
			{Key: "Fajr", Icon: "🌅", Description: "Dawn prayer"},
			{Key: "Dhuhr", Icon: "☀️", Description: "Midday prayer"},
			{Key: "Asr", Icon: "🌤️", Description: "Afternoon prayer"},
			{Key: "Maghrib", Icon: "🌇", Description: "Sunset prayer"},
			{Key: "Isha", Icon: "🌙", Description: "Night prayer"},
		},
	},
}

func ConfigFor(c Category) (CategoryConfig, bool) {
	cfg, ok := catalog[c]
	return cfg, ok
}

func SubCategoriesOf(c Category) []SubCategoryConfig {
	cfg, ok := catalog[c]
	if !ok {
		return nil
	}
	return cfg.SubCategories
}

func HasSubCategory(c Category, sub string) bool {
	for _, s := range SubCategoriesOf(c) {
		if s.Key == sub {
			return true
		}
	}
	return false
}

// DefaultSubCategory is the first tab of a category, or "" when the category
// has no subcategories.
func DefaultSubCategory(c Category) string {
	subs := SubCategoriesOf(c)
	if len(subs) == 0 {
		return ""
	}
	return subs[0].Key
}

// ResolveSubCategory finds the canonical key for a case-insensitive name.
func ResolveSubCategory(c Category, raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, s := range SubCategoriesOf(c) {
		if strings.EqualFold(s.Key, trimmed) {
			return s.Key, true
		}
	}
	return "", false
}

// Placeholder returns the input hint for the selected tabs.
func Placeholder(c Category, sub string) string {
	cfg, ok := catalog[c]
	if !ok {
		return ""
	}
	if c == CategoryLearning && sub == SubCategoryMonthly {
		return "e.g., Complete React course by end of month 📚"
	}
	if c == CategoryPrayers && sub != "" {
		for _, s := range cfg.SubCategories {
			if s.Key == sub {
				return "e.g., " + sub + " prayer reminder - " + s.Description
			}
		}
	}
	return cfg.Placeholder
}
