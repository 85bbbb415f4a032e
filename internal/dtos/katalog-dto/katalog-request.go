package katalog_dto

type UpsertPfarreiRequest struct {
	Name   string `json:"name" validate:"required,max=120"`
	Canton string `json:"canton" validate:"required,max=120"`
}

type CreateTaetigkeitRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type ParamPfarrei struct {
	Name string `params:"name" validate:"required,max=120"`
}

type ParamTaetigkeit struct {
	Name string `params:"name" validate:"required,max=120"`
}
