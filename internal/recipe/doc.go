// Package recipe defines the Recipe model and its TheMealDB wire codec.
//
// The wire format is flat: ingredients live in twenty numbered key pairs
// (strIngredient1..20 with strMeasure1..20) and instructions are a single
// CRLF-separated string. Codec maps that shape onto Recipe.Ingredients and
// Recipe.Instructions and back.
package recipe
