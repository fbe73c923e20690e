package chat

// DisplayName falls back to the email, then to a generic label.
func DisplayName(u *User) string {
	switch {
	case u == nil:
		return "Użytkownik"
	case u.DisplayName != "":
		return u.DisplayName
	case u.Email != "":
		return u.Email
	default:
		return "Użytkownik"
	}
}

func AvatarLetter(u *User) string {
	if u != nil {
		for _, s := range []string{u.DisplayName, u.Email} {
			for _, r := range s {
				return string(r)
			}
		}
	}
	return "U"
}
