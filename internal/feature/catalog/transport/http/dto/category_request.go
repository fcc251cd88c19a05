package dto

// CreateCategoryReq is the request body for creating a category.
type CreateCategoryReq struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

// CreateCategoryResponse returns the ID assigned to a new category.
type CreateCategoryResponse struct {
	ID uint `json:"id"`
}
