// internal/app/features/recipes/input.go
package recipes

import (
	"slices"

	"github.com/dalemusser/kasula/internal/app/system/htmlsanitize"
	"github.com/dalemusser/kasula/internal/app/system/normalize"
	"github.com/dalemusser/kasula/internal/domain/models"
)

// recipeInput is the body of POST /recipe/.
type recipeInput struct {
	Name         string               `json:"name" validate:"required,max=50" label:"Name"`
	Ingredients  []models.Ingredient  `json:"ingredients" validate:"max=100,dive" label:"Ingredients"`
	Instructions []models.Instruction `json:"instructions" validate:"max=100,dive" label:"Instructions"`
	CookingTime  int                  `json:"cooking_time" validate:"gte=0,lte=10080" label:"Cooking time"`
	Difficulty   int                  `json:"difficulty" validate:"gte=0,lte=5" label:"Difficulty"`
	Image        *string              `json:"image" validate:"omitempty,url,max=500" label:"Image"`
	Images       []string             `json:"images" validate:"max=10,dive,url,max=500" label:"Images"`
}

func (in *recipeInput) clean() {
	in.Name = htmlsanitize.PlainText(normalize.Name(in.Name))
	in.Ingredients = cleanIngredients(in.Ingredients)
	in.Instructions = cleanInstructions(in.Instructions)
}

// recipeUpdate is the partial body of PUT /recipe/{id}.
type recipeUpdate struct {
	Name         *string               `json:"name" validate:"omitempty,min=1,max=50" label:"Name"`
	Ingredients  *[]models.Ingredient  `json:"ingredients" validate:"omitempty,max=100,dive" label:"Ingredients"`
	Instructions *[]models.Instruction `json:"instructions" validate:"omitempty,max=100,dive" label:"Instructions"`
	CookingTime  *int                  `json:"cooking_time" validate:"omitempty,gte=0,lte=10080" label:"Cooking time"`
	Difficulty   *int                  `json:"difficulty" validate:"omitempty,gte=0,lte=5" label:"Difficulty"`
	Image        *string               `json:"image" validate:"omitempty,url,max=500" label:"Image"`
}

func (in *recipeUpdate) clean() {
	if in.Name != nil {
		name := htmlsanitize.PlainText(normalize.Name(*in.Name))
		in.Name = &name
	}
	if in.Ingredients != nil {
		v := cleanIngredients(*in.Ingredients)
		in.Ingredients = &v
	}
	if in.Instructions != nil {
		v := cleanInstructions(*in.Instructions)
		in.Instructions = &v
	}
}

func cleanIngredients(in []models.Ingredient) []models.Ingredient {
	out := make([]models.Ingredient, 0, len(in))
	for _, ing := range in {
		ing.Name = htmlsanitize.PlainText(normalize.Name(ing.Name))
		ing.Unit = htmlsanitize.PlainText(normalize.Name(ing.Unit))
		out = append(out, ing)
	}
	return out
}

// cleanInstructions orders steps by step_number and numbers any step sent
// without one after the steps before it.
func cleanInstructions(in []models.Instruction) []models.Instruction {
	out := make([]models.Instruction, 0, len(in))
	for i, st := range in {
		st.Body = htmlsanitize.PlainText(st.Body)
		if st.StepNumber <= 0 {
			st.StepNumber = i + 1
		}
		out = append(out, st)
	}
	slices.SortStableFunc(out, func(a, b models.Instruction) int {
		return a.StepNumber - b.StepNumber
	})
	return out
}
