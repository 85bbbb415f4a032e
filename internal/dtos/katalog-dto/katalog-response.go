package katalog_dto

type CantonResponse struct {
	Parish string `json:"parish"`
	Canton string `json:"canton"`
}
