package collections

import (
	"github.com/dalemusser/kasula/internal/app/system/htmlsanitize"
	"github.com/dalemusser/kasula/internal/app/system/normalize"
)

type createInput struct {
	Name      string   `json:"name" validate:"required,max=100" label:"Name"`
	RecipeIDs []string `json:"recipe_ids" validate:"max=500,dive,docid" label:"Recipe ids"`
}

type renameInput struct {
	Name string `json:"name" validate:"required,max=100" label:"Name"`
}

func cleanName(s string) string {
	return htmlsanitize.PlainText(normalize.Name(s))
}
