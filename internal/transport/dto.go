package transport

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price"       validate:"gte=0"`
	CategoryID  uint    `json:"category_id" validate:"required"`
}

type CreateUserRequest struct {
	Email    string `json:"email"     validate:"required,email,max=255"`
	IsActive *bool  `json:"is_active"`
}

// Active reports the requested flag; users are active unless told otherwise.
func (r CreateUserRequest) Active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}

// PatchUserRequest carries only the fields the caller supplied.
type PatchUserRequest struct {
	Email    *string `json:"email"     validate:"omitempty,email,max=255"`
	IsActive *bool   `json:"is_active"`
}

func (r PatchUserRequest) Empty() bool {
	return r.Email == nil && r.IsActive == nil
}

type ListQuery struct {
	Skip  int
	Limit int
}

type SearchQuery struct {
	Q     string `validate:"required"`
	Skip  int
	Limit int
}
