package model

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

type User struct {
	BaseModel
	Fullname    string `db:"fullname"`
	CompanyName string `db:"company_name"`
	Phone       string `db:"phone"`
	Role        string `db:"role"`
}
