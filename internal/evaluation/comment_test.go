package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var peopleSubs = []string{"מוטיבציה", "גיוס", "שימור"}

func TestDecodeComments_HebrewSubCategory(t *testing.T) {
	values, general := DecodeComments("מוטיבציה: טוב", peopleSubs)
	assert.Equal(t, "טוב", values["מוטיבציה"])
	assert.Equal(t, "", values["גיוס"])
	assert.Equal(t, "", values["שימור"])
	assert.Equal(t, "", general)
}

func TestDecodeComments_NoMatchingPrefixes(t *testing.T) {
	blob := "המנהל השתפר מאוד\nכדאי להמשיך לעקוב"
	values, general := DecodeComments(blob, peopleSubs)
	for _, name := range peopleSubs {
		assert.Equal(t, "", values[name], "sub=%s", name)
	}
	assert.Equal(t, blob, general)
}

func TestDecodeComments_MixedLines(t *testing.T) {
	blob := "הערה כללית\nגיוס: שני טבחים חדשים\nמוטיבציה: טוב\nעוד הערה"
	values, general := DecodeComments(blob, peopleSubs)
	assert.Equal(t, "טוב", values["מוטיבציה"])
	assert.Equal(t, "שני טבחים חדשים", values["גיוס"])
	assert.Equal(t, "הערה כללית\nעוד הערה", general)
}

func TestDecodeComments_DuplicatePrefixFirstWins(t *testing.T) {
	blob := "מוטיבציה: ראשון\nמוטיבציה: שני"
	values, general := DecodeComments(blob, peopleSubs)
	assert.Equal(t, "ראשון", values["מוטיבציה"])
	// The second line matched a known prefix, so it is not general text.
	assert.Equal(t, "", general)
}

func TestDecodeComments_EmptyBlob(t *testing.T) {
	values, general := DecodeComments("", peopleSubs)
	assert.Len(t, values, len(peopleSubs))
	assert.Equal(t, "", general)
}

func TestSetSubComment_RoundTrip(t *testing.T) {
	blob := SetSubComment("", "מוטיבציה", "טוב")
	values, _ := DecodeComments(blob, peopleSubs)
	assert.Equal(t, "טוב", values["מוטיבציה"])
}

func TestSetSubComment_ReplacesExisting(t *testing.T) {
	blob := "מוטיבציה: ישן\nהערה כללית"
	blob = SetSubComment(blob, "מוטיבציה", "חדש")
	values, general := DecodeComments(blob, peopleSubs)
	assert.Equal(t, "חדש", values["מוטיבציה"])
	assert.Equal(t, "הערה כללית", general)
}

func TestSetSubComment_RemovesAllMatchesOnWrite(t *testing.T) {
	blob := "מוטיבציה: ראשון\nמוטיבציה: שני\nכללי"
	blob = SetSubComment(blob, "מוטיבציה", "אחד")
	values, general := DecodeComments(blob, peopleSubs)
	assert.Equal(t, "אחד", values["מוטיבציה"])
	assert.Equal(t, "כללי", general)
	assert.NotContains(t, blob, "ראשון")
	assert.NotContains(t, blob, "שני")
}

func TestSetSubComment_EmptyValueRemovesLine(t *testing.T) {
	blob := "מוטיבציה: טוב\nכללי"
	blob = SetSubComment(blob, "מוטיבציה", "")
	values, general := DecodeComments(blob, peopleSubs)
	assert.Equal(t, "", values["מוטיבציה"])
	assert.Equal(t, "כללי", general)
}

func TestSetSubComment_MetacharactersInName(t *testing.T) {
	// Names are matched by plain prefix comparison, so characters that are
	// regex metacharacters must pass through untouched.
	subs := []string{"ניקיון (כללי)"}
	blob := SetSubComment("", "ניקיון (כללי)", "תקין")
	values, general := DecodeComments(blob, subs)
	assert.Equal(t, "תקין", values["ניקיון (כללי)"])
	assert.Equal(t, "", general)
}

func TestSetGeneralComment_PreservesSubLines(t *testing.T) {
	blob := "מוטיבציה: טוב\nהערה ישנה"
	blob = SetGeneralComment(blob, "הערה חדשה", peopleSubs)
	values, general := DecodeComments(blob, peopleSubs)
	assert.Equal(t, "טוב", values["מוטיבציה"])
	assert.Equal(t, "הערה חדשה", general)
	assert.NotContains(t, blob, "ישנה")
}

func TestSetGeneralComment_MultiLine(t *testing.T) {
	blob := SetGeneralComment("גיוס: בתהליך", "שורה ראשונה\nשורה שניה", peopleSubs)
	values, general := DecodeComments(blob, peopleSubs)
	assert.Equal(t, "בתהליך", values["גיוס"])
	assert.Equal(t, "שורה ראשונה\nשורה שניה", general)
}

func TestSetGeneralComment_Clear(t *testing.T) {
	blob := SetGeneralComment("גיוס: בתהליך\nישן", "", peopleSubs)
	assert.Equal(t, "גיוס: בתהליך", blob)
}

// A general comment that happens to open with a known sub-category name
// plus colon-space is misfiled as that sub-category. This is inherent to
// the line-prefix encoding and kept for wire compatibility with existing
// records.
func TestDecodeComments_AmbiguousGeneralLineIsMisfiled(t *testing.T) {
	blob := "מוטיבציה: היא המפתח להצלחה"
	values, general := DecodeComments(blob, peopleSubs)
	assert.Equal(t, "היא המפתח להצלחה", values["מוטיבציה"])
	assert.Equal(t, "", general)
}

func TestRegistry_TemplateByName(t *testing.T) {
	tpl, ok := TemplateByName("ניהול אנשים")
	require.True(t, ok)
	assert.Equal(t, peopleSubs, tpl.SubCategories)

	_, ok = TemplateByName("לא קיים")
	assert.False(t, ok)
}

func TestRegistry_AllCategoriesHaveDefaults(t *testing.T) {
	require.NotEmpty(t, Categories)
	for _, tpl := range Categories {
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.SubCategories)
		assert.GreaterOrEqual(t, tpl.DefaultRating, 0.0)
		assert.LessOrEqual(t, tpl.DefaultRating, 10.0)
	}
}
