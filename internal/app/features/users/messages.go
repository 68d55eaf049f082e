package users

// Client-facing detail strings.
const (
	msgInvalidBody    = "Invalid request body"
	msgInvalidEmail   = "Invalid email format"
	msgAlreadyExists  = "Username or email already registered"
	msgBadCredentials = "Incorrect username or password"
	msgMissingLogin   = "username and password are required"
	msgUserNotFound   = "User %s not found"
	msgUserDeleted    = "User successfully deleted"
	msgUsernameFixed  = "Username cannot be changed"
	msgNotYourAccount = "Not authorized to modify this user"
	msgSelfFollow     = "You cannot follow yourself"
	msgFileRequired   = "file is required"
	msgInvalidCode    = "Invalid or expired recovery code"
	msgRecoverySent   = "If an account exists for that email, a recovery code has been sent"
	msgPasswordReset  = "Password successfully updated"
	msgPrivateProfile = "This account is private"
	msgFollowing      = "You are now following %s"
	msgUnfollowed     = "You are no longer following %s"
)
