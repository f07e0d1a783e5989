package evaluation

// CategoryTemplate describes one evaluation category as presented by the
// form: display name, the ordered sub-categories whose answers are encoded
// into the comment blob, a default rating and placeholder text.
type CategoryTemplate struct {
	Name          string
	SubCategories []string
	DefaultRating float64
	Placeholder   string
}

// Categories is the fixed, ordered registry of evaluation categories.
// Names are the Hebrew strings the backend stores verbatim; changing them
// would orphan the sub-category prefixes inside existing records.
var Categories = []CategoryTemplate{
	{
		Name:          "תפעול",
		SubCategories: []string{"ניקיון", "סדר", "מלאי"},
		DefaultRating: 5,
		Placeholder:   "איך מתנהל המטבח ביום-יום?",
	},
	{
		Name:          "ניהול אנשים",
		SubCategories: []string{"מוטיבציה", "גיוס", "שימור"},
		DefaultRating: 5,
		Placeholder:   "איך המנהל עובד עם הצוות?",
	},
	{
		Name:          "ביצועים עסקיים",
		SubCategories: []string{"מכירות", "יעילות"},
		DefaultRating: 5,
		Placeholder:   "עמידה ביעדים, ניהול עלויות",
	},
	{
		Name:          "מנהיגות",
		SubCategories: []string{"יוזמה", "תקשורת"},
		DefaultRating: 5,
		Placeholder:   "חזון, קבלת החלטות, דוגמה אישית",
	},
}

// TemplateByName returns the registered template for a category name.
func TemplateByName(name string) (CategoryTemplate, bool) {
	for _, t := range Categories {
		if t.Name == name {
			return t, true
		}
	}
	return CategoryTemplate{}, false
}
