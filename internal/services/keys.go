package services

// Fixed names of the logical records kept in the storage substrate.
const (
	KeyUsers       = "resilia_users_v1"
	KeySession     = "resilia_session_v1"
	KeyMoodHistory = "moodHistory"
	KeyChatHistory = "chatHistory"
	KeyDeviceID    = "device_id"
)
