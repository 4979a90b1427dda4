package i18n

var english = Table{
	Required:          "Required",
	TooShort:          "Too short",
	InvalidPhone:      "Invalid phone number. Use 12345678 or +47 12345678",
	InvalidEmail:      "Invalid email address",
	Mismatch:          "Passwords do not match",
	PasswordMinLength: "At least 8 characters",
	PasswordUppercase: "One uppercase letter",
	PasswordLowercase: "One lowercase letter",
	PasswordDigit:     "One digit",
	PasswordSymbol:    "One special character (!@#$%^&*)",

	InvalidCredentials: "Invalid email or password",
	AccessDenied:       "Access denied",
	EmailTaken:         "An account with this email already exists",
	InternalError:      "Something went wrong. Please try again",
	NotFound:           "Not found",
	LogoTooLarge:       "The logo must be at most 2 MB",
	LogoInvalidType:    "The logo must be an image",
	NoResults:          "No checked-in guests match this number",
	Forbidden:          "You do not have access to this page",

	AppName:       "SafeVisit",
	NavDashboard:  "Dashboard",
	NavReception:  "Reception",
	NavSettings:   "Settings",
	NavApproval:   "Approvals",
	NavLogout:     "Log out",
	Language:      "Language",
	Save:          "Save",
	Saved:         "Saved",
	Cancel:        "Cancel",
	Search:        "Search",
	Back:          "Back",
	Actions:       "Actions",
	Status:        "Status",
	StatusIn:      "On site",
	StatusOut:     "Left",
	StatusPending: "Pending",
	Created:       "Created",

	LoginTitle:      "Sign in",
	SignupTitle:     "Register your company",
	Email:           "Email",
	Password:        "Password",
	ConfirmPassword: "Confirm password",
	CompanyName:     "Company name",
	CompanyAddress:  "Company address",
	CompanyPhone:    "Company phone",
	SignIn:          "Sign in",
	SignUp:          "Create account",
	NoAccount:       "No account yet?",
	HaveAccount:     "Already registered?",
	SignupPending:   "Your company is registered and awaits approval by an administrator.",
	PasswordRules:   "The password must contain:",

	DashboardTitle:   "Guest overview",
	CurrentGuests:    "Current guests",
	CheckedInToday:   "Checked in today",
	CheckedOutToday:  "Checked out today",
	FullName:         "Full name",
	VisitorCompany:   "Company",
	Phone:            "Phone",
	HostName:         "Visiting",
	HostEmail:        "Host email",
	CheckIn:          "Check-in",
	CheckOut:         "Check out",
	PrintBadge:       "Print badge",
	ExportPDF:        "Guest list (PDF)",
	ExportXLSX:       "Guest list (Excel)",
	NoVisitors:       "No guests registered",
	CheckedOutNotice: "The guest has been checked out",

	FireAlarm:              "Fire alarm",
	FireAlarmConfirm:       "Trigger the fire alarm? All guests with an email address will be notified.",
	FireAlarmConfirmYes:    "Yes, trigger the alarm",
	AlarmSummaryTitle:      "Fire alarm triggered",
	AlarmCurrentGuests:     "Current guests: %d",
	AlarmNotificationsSent: "Notifications sent: %d/%d",
	AlarmSimulation:        "Simulation mode: no email provider is configured, messages were only logged.",
	DownloadEvacuation:     "Download evacuation list",
	EmergencyMessage:       "🚨 FIRE ALARM - %s! Leave the building immediately and proceed to the assembly point in front of the office. Follow evacuation procedures. - AccessManager",

	ReceptionTitle:     "Reception",
	RegisterVisitor:    "Register guest",
	Register:           "Register",
	RegisteredSuccess:  "Welcome! You are now checked in.",
	GuestRegisterTitle: "Guest registration",
	PrivacyConsent:     "I accept the privacy policy",
	PrivacyTitle:       "Privacy policy",
	PrivacyBody:        "We store your name, phone number, optional email and the person you visit while you are on site. Records are deleted automatically 24 hours after you check out. The data is used for visitor management and evacuation only.",
	CheckoutTitle:      "Check out",
	SearchByPhone:      "Enter your phone number",
	SelectToCheckout:   "Select your name to check out",
	Goodbye:            "Thank you for your visit!",
	PanelTitle:         "Guest panel",
	GuestsOnSite:       "Guests on site",
	LobbyWelcome:       "Welcome",
	LobbyRegister:      "I am arriving",
	LobbyCheckout:      "I am leaving",
	HostArrivalMessage: "%s (%s) has arrived at %s and is waiting for you. Arrival: %s",

	SettingsTitle:     "Company settings",
	Logo:              "Logo",
	UploadLogo:        "Upload logo",
	RemoveLogo:        "Remove logo",
	ApprovalTitle:     "Company approvals",
	PendingCompanies:  "Awaiting approval",
	ApprovedCompanies: "Approved companies",
	Approve:           "Approve",
	Reject:            "Reject",
	NoPending:         "No companies awaiting approval",

	EvacuationList: "EVACUATION LIST",
	GuestList:      "GUEST LIST",
	PDFCompany:     "Company",
	PDFDate:        "Date",
	PeopleCount:    "%d people",
	ColNo:          "No.",
	ColName:        "Name",
	ColCompany:     "Company",
	ColHost:        "Visiting",
	ColPhone:       "Phone",
	ColCheckIn:     "Check-in",
	PDFGenerated:   "Generated: %s",
	PDFFooter:      "SafeVisit - Guest management system",
	BadgeGuest:     "GUEST",
	FileEvacuation: "evacuation-list",
	FileGuestList:  "guest-list",
	SheetGuests:    "Guests",
}
