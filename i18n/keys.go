package i18n

// Validation and error codes. Values match the codes handlers put in
// validation.Violations and JSON error bodies.
const (
	Required          Key = "required"
	TooShort          Key = "too_short"
	InvalidPhone      Key = "invalid_phone"
	InvalidEmail      Key = "invalid_email"
	Mismatch          Key = "mismatch"
	PasswordMinLength Key = "password_min_length"
	PasswordUppercase Key = "password_uppercase"
	PasswordLowercase Key = "password_lowercase"
	PasswordDigit     Key = "password_digit"
	PasswordSymbol    Key = "password_symbol"

	InvalidCredentials Key = "invalid_credentials"
	AccessDenied       Key = "access_denied"
	EmailTaken         Key = "email_taken"
	InternalError      Key = "internal_error"
	NotFound           Key = "not_found"
	LogoTooLarge       Key = "logo_too_large"
	LogoInvalidType    Key = "logo_invalid_type"
	NoResults          Key = "no_results"
	Forbidden          Key = "forbidden"
)

// Navigation and shared labels.
const (
	AppName       Key = "app_name"
	NavDashboard  Key = "nav_dashboard"
	NavReception  Key = "nav_reception"
	NavSettings   Key = "nav_settings"
	NavApproval   Key = "nav_approval"
	NavLogout     Key = "nav_logout"
	Language      Key = "language"
	Save          Key = "save"
	Saved         Key = "saved"
	Cancel        Key = "cancel"
	Search        Key = "search"
	Back          Key = "back"
	Actions       Key = "actions"
	Status        Key = "status"
	StatusIn      Key = "status_in"
	StatusOut     Key = "status_out"
	StatusPending Key = "status_pending"
	Created       Key = "created"
)

// Authentication pages.
const (
	LoginTitle      Key = "login_title"
	SignupTitle     Key = "signup_title"
	Email           Key = "email"
	Password        Key = "password"
	ConfirmPassword Key = "confirm_password"
	CompanyName     Key = "company_name"
	CompanyAddress  Key = "company_address"
	CompanyPhone    Key = "company_phone"
	SignIn          Key = "sign_in"
	SignUp          Key = "sign_up"
	NoAccount       Key = "no_account"
	HaveAccount     Key = "have_account"
	SignupPending   Key = "signup_pending"
	PasswordRules   Key = "password_rules"
)

// Visitor fields and dashboard.
const (
	DashboardTitle   Key = "dashboard_title"
	CurrentGuests    Key = "current_guests"
	CheckedInToday   Key = "checked_in_today"
	CheckedOutToday  Key = "checked_out_today"
	FullName         Key = "full_name"
	VisitorCompany   Key = "visitor_company"
	Phone            Key = "phone"
	HostName         Key = "host_name"
	HostEmail        Key = "host_email"
	CheckIn          Key = "check_in"
	CheckOut         Key = "check_out"
	PrintBadge       Key = "print_badge"
	ExportPDF        Key = "export_pdf"
	ExportXLSX       Key = "export_xlsx"
	NoVisitors       Key = "no_visitors"
	CheckedOutNotice Key = "checked_out_notice"
)

// Fire alarm.
const (
	FireAlarm              Key = "fire_alarm"
	FireAlarmConfirm       Key = "fire_alarm_confirm"
	FireAlarmConfirmYes    Key = "fire_alarm_confirm_yes"
	AlarmSummaryTitle      Key = "alarm_summary_title"
	AlarmCurrentGuests     Key = "alarm_current_guests"
	AlarmNotificationsSent Key = "alarm_notifications_sent"
	AlarmSimulation        Key = "alarm_simulation"
	DownloadEvacuation     Key = "download_evacuation"
	EmergencyMessage       Key = "emergency_message"
)

// Reception and kiosk pages.
const (
	ReceptionTitle     Key = "reception_title"
	RegisterVisitor    Key = "register_visitor"
	Register           Key = "register"
	RegisteredSuccess  Key = "registered_success"
	GuestRegisterTitle Key = "guest_register_title"
	PrivacyConsent     Key = "privacy_consent"
	PrivacyTitle       Key = "privacy_title"
	PrivacyBody        Key = "privacy_body"
	CheckoutTitle      Key = "checkout_title"
	SearchByPhone      Key = "search_by_phone"
	SelectToCheckout   Key = "select_to_checkout"
	Goodbye            Key = "goodbye"
	PanelTitle         Key = "panel_title"
	GuestsOnSite       Key = "guests_on_site"
	LobbyWelcome       Key = "lobby_welcome"
	LobbyRegister      Key = "lobby_register"
	LobbyCheckout      Key = "lobby_checkout"
	HostArrivalMessage Key = "host_arrival_message"
)

// Settings and approval.
const (
	SettingsTitle     Key = "settings_title"
	Logo              Key = "logo"
	UploadLogo        Key = "upload_logo"
	RemoveLogo        Key = "remove_logo"
	ApprovalTitle     Key = "approval_title"
	PendingCompanies  Key = "pending_companies"
	ApprovedCompanies Key = "approved_companies"
	Approve           Key = "approve"
	Reject            Key = "reject"
	NoPending         Key = "no_pending"
)

// Generated documents.
const (
	EvacuationList Key = "evacuation_list"
	GuestList      Key = "guest_list"
	PDFCompany     Key = "pdf_company"
	PDFDate        Key = "pdf_date"
	PeopleCount    Key = "people_count"
	ColNo          Key = "col_no"
	ColName        Key = "col_name"
	ColCompany     Key = "col_company"
	ColHost        Key = "col_host"
	ColPhone       Key = "col_phone"
	ColCheckIn     Key = "col_check_in"
	PDFGenerated   Key = "pdf_generated"
	PDFFooter      Key = "pdf_footer"
	BadgeGuest     Key = "badge_guest"
	FileEvacuation Key = "file_evacuation"
	FileGuestList  Key = "file_guest_list"
	SheetGuests    Key = "sheet_guests"
)

// AllKeys lists every key; each language table must cover all of them.
var AllKeys = []Key{
	Required, TooShort, InvalidPhone, InvalidEmail, Mismatch,
	PasswordMinLength, PasswordUppercase, PasswordLowercase, PasswordDigit, PasswordSymbol,
	InvalidCredentials, AccessDenied, EmailTaken, InternalError, NotFound,
	LogoTooLarge, LogoInvalidType, NoResults, Forbidden,
	AppName, NavDashboard, NavReception, NavSettings, NavApproval, NavLogout,
	Language, Save, Saved, Cancel, Search, Back, Actions, Status, StatusIn, StatusOut, StatusPending, Created,
	LoginTitle, SignupTitle, Email, Password, ConfirmPassword, CompanyName, CompanyAddress, CompanyPhone,
	SignIn, SignUp, NoAccount, HaveAccount, SignupPending, PasswordRules,
	DashboardTitle, CurrentGuests, CheckedInToday, CheckedOutToday, FullName, VisitorCompany, Phone,
	HostName, HostEmail, CheckIn, CheckOut, PrintBadge, ExportPDF, ExportXLSX, NoVisitors, CheckedOutNotice,
	FireAlarm, FireAlarmConfirm, FireAlarmConfirmYes, AlarmSummaryTitle, AlarmCurrentGuests,
	AlarmNotificationsSent, AlarmSimulation, DownloadEvacuation, EmergencyMessage,
	ReceptionTitle, RegisterVisitor, Register, RegisteredSuccess, GuestRegisterTitle, PrivacyConsent,
	PrivacyTitle, PrivacyBody, CheckoutTitle, SearchByPhone, SelectToCheckout, Goodbye, PanelTitle,
	GuestsOnSite, LobbyWelcome, LobbyRegister, LobbyCheckout, HostArrivalMessage,
	SettingsTitle, Logo, UploadLogo, RemoveLogo, ApprovalTitle, PendingCompanies, ApprovedCompanies,
	Approve, Reject, NoPending,
	EvacuationList, GuestList, PDFCompany, PDFDate, PeopleCount, ColNo, ColName, ColCompany, ColHost,
	ColPhone, ColCheckIn, PDFGenerated, PDFFooter, BadgeGuest, FileEvacuation, FileGuestList, SheetGuests,
}
