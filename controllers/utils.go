package controllers

func StrPointer(b string) *string {
	return &b
}
