package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Options configure derived fields produced during decode.
type Options struct {
	// IngredientImageBaseURL prefixes ingredient image names, including the
	// trailing slash.
	IngredientImageBaseURL string
}

// Codec converts between the flat MealDB meal object and Recipe. A Codec has
// no mutable state and may be shared across goroutines.
type Codec struct {
	imageBase string
}

// NewCodec returns a Codec for the given options.
func NewCodec(opts Options) Codec {
	return Codec{imageBase: strings.TrimSpace(opts.IngredientImageBaseURL)}
}

// Envelope mirrors the {"meals": [...]} wrapper used by every endpoint.
type Envelope struct {
	Meals []Recipe `json:"meals"`
}

// Decode parses a single meal object.
func (c Codec) Decode(data []byte) (Recipe, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return Recipe{}, fmt.Errorf("decode meal: %w", err)
	}
	return c.DecodeObject(obj)
}

// DecodeList parses a {"meals": [...]} envelope. A null or missing meals
// array yields an empty list.
func (c Codec) DecodeList(data []byte) ([]Recipe, error) {
	var env struct {
		Meals []map[string]json.RawMessage `json:"meals"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode meals: %w", err)
	}
	out := make([]Recipe, 0, len(env.Meals))
	for i, obj := range env.Meals {
		r, err := c.DecodeObject(obj)
		if err != nil {
			return nil, fmt.Errorf("meal %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// DecodeObject builds a Recipe from an already split meal object.
func (c Codec) DecodeObject(obj map[string]json.RawMessage) (Recipe, error) {
	id, err := decodeID(obj)
	if err != nil {
		return Recipe{}, err
	}
	r := Recipe{ID: id}

	text := []struct {
		key  string
		dest *string
	}{
		{keyName, &r.Name},
		{keyDrinkAlternate, &r.DrinkAlternate},
		{keyCategory, &r.Category},
		{keyArea, &r.Area},
		{keyTags, &r.Tags},
		{keyInstructions, &r.InstructionsRaw},
	}
	for _, f := range text {
		value, _, err := stringField(obj, f.key)
		if err != nil {
			return Recipe{}, err
		}
		*f.dest = value
	}

	links := []struct {
		key  string
		dest **url.URL
	}{
		{keyImage, &r.ImageURL},
		{keyYoutube, &r.YoutubeURL},
		{keySource, &r.SourceURL},
		{keyImageSource, &r.ImageSourceURL},
	}
	for _, f := range links {
		// URL fields are best effort; a wrongly typed value is treated as absent.
		value, _, _ := stringField(obj, f.key)
		*f.dest = parseOptionalURL(value)
	}

	r.Ingredients, err = c.decodeIngredients(obj)
	if err != nil {
		return Recipe{}, err
	}
	r.Instructions = NormalizeInstructions(r.InstructionsRaw)
	r.ThumbnailURL = thumbnailFor(r.ImageURL)
	return r, nil
}

type fieldState int

const (
	fieldAbsent fieldState = iota
	fieldNull
	fieldSet
)

func stringField(obj map[string]json.RawMessage, key string) (string, fieldState, error) {
	raw, ok := obj[key]
	if !ok {
		return "", fieldAbsent, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", fieldNull, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fieldSet, &FieldError{Key: key, Err: err}
	}
	return s, fieldSet, nil
}

func decodeID(obj map[string]json.RawMessage) (int, error) {
	value, state, err := stringField(obj, keyID)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a string", ErrMalformedID, keyID)
	}
	if state != fieldSet {
		return 0, fmt.Errorf("%w: %s missing", ErrMalformedID, keyID)
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedID, value)
	}
	return id, nil
}

type slotValue struct {
	name        string
	measurement string
	ok          bool
}

func (c Codec) decodeIngredients(obj map[string]json.RawMessage) ([]Ingredient, error) {
	var scratch [MaxIngredients]slotValue
	count := 0
	for i, keys := range slots {
		name, state, err := stringField(obj, keys.ingredient)
		if err != nil {
			return nil, err
		}
		if state != fieldSet || strings.TrimSpace(name) == "" {
			continue
		}
		measure, mstate, err := stringField(obj, keys.measure)
		if err != nil {
			return nil, err
		}
		if mstate == fieldAbsent {
			continue
		}
		scratch[i] = slotValue{name: name, measurement: measure, ok: true}
		count++
	}

	if count == 0 {
		return nil, nil
	}
	out := make([]Ingredient, 0, count)
	for _, s := range scratch {
		if !s.ok {
			continue
		}
		out = append(out, Ingredient{
			ID:          uuid.New(),
			Name:        s.name,
			Measurement: s.measurement,
			imageBase:   c.imageBase,
		})
	}
	return out, nil
}

func parseOptionalURL(value string) *url.URL {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	return u
}

// thumbnailFor appends the MealDB preview suffix to the full image path.
func thumbnailFor(image *url.URL) *url.URL {
	if image == nil {
		return nil
	}
	u, err := url.Parse(image.String() + "/preview")
	if err != nil {
		return nil
	}
	return u
}

// Encode renders r in the flat wire schema. All twenty ingredient slots are
// written; unused ones carry empty strings.
func Encode(r Recipe) ([]byte, error) {
	obj, err := r.wireObject()
	if err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}

// MarshalJSON implements json.Marshaler using the wire schema.
func (r Recipe) MarshalJSON() ([]byte, error) {
	return Encode(r)
}

func (r Recipe) wireObject() (map[string]any, error) {
	if len(r.Ingredients) > MaxIngredients {
		return nil, fmt.Errorf("%w: %d exceeds %d slots", ErrTooManyIngredients, len(r.Ingredients), MaxIngredients)
	}

	obj := make(map[string]any, 11+2*MaxIngredients)
	obj[keyID] = strconv.Itoa(r.ID)
	obj[keyName] = nullable(r.Name)
	obj[keyDrinkAlternate] = nullable(r.DrinkAlternate)
	obj[keyCategory] = nullable(r.Category)
	obj[keyArea] = nullable(r.Area)
	obj[keyInstructions] = nullable(r.InstructionsRaw)
	obj[keyTags] = nullable(r.Tags)
	obj[keyImage] = nullableURL(r.ImageURL)
	obj[keyYoutube] = nullableURL(r.YoutubeURL)
	obj[keySource] = nullableURL(r.SourceURL)
	obj[keyImageSource] = nullableURL(r.ImageSourceURL)

	for i, keys := range slots {
		name, measure := "", ""
		if i < len(r.Ingredients) {
			name = r.Ingredients[i].Name
			measure = r.Ingredients[i].Measurement
		}
		obj[keys.ingredient] = name
		obj[keys.measure] = measure
	}
	return obj, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableURL(u *url.URL) any {
	if u == nil {
		return nil
	}
	return u.String()
}
