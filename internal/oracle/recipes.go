package oracle

import "context"

// CalculateNutrition asks the backend for a nutrition breakdown of a
// recipe at the given serving count.
func (c *Client) CalculateNutrition(ctx context.Context, recipeID, servings int) (*NutritionReport, error) {
	body := struct {
		RecipeID int `json:"recipe_id"`
		Servings int `json:"servings"`
	}{RecipeID: recipeID, Servings: servings}

	var out NutritionReport
	if err := c.postJSON(ctx, "/api/nutrition/calculate", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IndianizeRecipe asks the backend to rewrite a recipe for a regional
// Indian cuisine. The transformation itself is entirely server-side.
func (c *Client) IndianizeRecipe(ctx context.Context, recipeID int, region string) (*IndianizedRecipe, error) {
	body := struct {
		RecipeID int    `json:"recipe_id"`
		Region   string `json:"region"`
	}{RecipeID: recipeID, Region: region}

	var out IndianizedRecipe
	if err := c.postJSON(ctx, "/api/indianize", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegionalInfo fetches the cuisine profile of one Indian region.
func (c *Client) RegionalInfo(ctx context.Context, region string) (*RegionalInfo, error) {
	var out RegionalInfo
	if err := c.getJSON(ctx, "/api/regions/"+region, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
