package model

// Contact is a delivery/contact record owned by one user. Orders reference
// contacts but checkout never mutates them.
type Contact struct {
	ContactID  int64  `json:"contactid"`
	UserID     int64  `json:"-"`
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	Patronymic string `json:"patronymic,omitempty"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	City       string `json:"city,omitempty"`
	Street     string `json:"street,omitempty"`
	House      string `json:"house,omitempty"`
	Building   string `json:"building,omitempty"`
	Structure  string `json:"structure,omitempty"`
	Apartment  string `json:"apartment,omitempty"`
}
