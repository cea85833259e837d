package profile

type Avatar struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Hint     string `json:"hint"`
}

var avatars = []Avatar{
	{ID: "avatar1", ImageURL: "https://picsum.photos/seed/avatar1/128/128", Hint: "explorer"},
	{ID: "avatar2", ImageURL: "https://picsum.photos/seed/avatar2/128/128", Hint: "pilot"},
	{ID: "avatar3", ImageURL: "https://picsum.photos/seed/avatar3/128/128", Hint: "captain"},
	{ID: "avatar4", ImageURL: "https://picsum.photos/seed/avatar4/128/128", Hint: "adventurer"},
	{ID: "avatar5", ImageURL: "https://picsum.photos/seed/avatar5/128/128", Hint: "navigator"},
	{ID: "avatar6", ImageURL: "https://picsum.photos/seed/avatar6/128/128", Hint: "cartoon"},
	{ID: "avatar7", ImageURL: "https://picsum.photos/seed/avatar7/128/128", Hint: "anime"},
	{ID: "avatar8", ImageURL: "https://picsum.photos/seed/avatar8/128/128", Hint: "pixel"},
}

// Avatars returns the selectable avatars.
func Avatars() []Avatar {
	out := make([]Avatar, len(avatars))
	copy(out, avatars)
	return out
}

func AvatarByID(id string) (Avatar, bool) {
	for _, a := range avatars {
		if a.ID == id {
			return a, true
		}
	}
	return Avatar{}, false
}
