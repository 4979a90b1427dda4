package i18n

var norwegian = Table{
	Required:          "Påkrevd",
	TooShort:          "For kort",
	InvalidPhone:      "Ugyldig telefonnummer. Bruk format: 12345678 eller +47 12345678",
	InvalidEmail:      "Ugyldig e-postadresse",
	Mismatch:          "Passordene er ikke like",
	PasswordMinLength: "Minst 8 tegn",
	PasswordUppercase: "Én stor bokstav",
	PasswordLowercase: "Én liten bokstav",
	PasswordDigit:     "Ett siffer",
	PasswordSymbol:    "Ett spesialtegn (!@#$%^&*)",

	InvalidCredentials: "Feil e-post eller passord",
	AccessDenied:       "Ingen tilgang",
	EmailTaken:         "Det finnes allerede en konto med denne e-postadressen",
	InternalError:      "Noe gikk galt. Prøv igjen",
	NotFound:           "Ikke funnet",
	LogoTooLarge:       "Logoen kan være maks 2 MB",
	LogoInvalidType:    "Logoen må være et bilde",
	NoResults:          "Ingen innsjekkede gjester med dette nummeret",
	Forbidden:          "Du har ikke tilgang til denne siden",

	AppName:       "SafeVisit",
	NavDashboard:  "Oversikt",
	NavReception:  "Resepsjon",
	NavSettings:   "Innstillinger",
	NavApproval:   "Godkjenninger",
	NavLogout:     "Logg ut",
	Language:      "Språk",
	Save:          "Lagre",
	Saved:         "Lagret",
	Cancel:        "Avbryt",
	Search:        "Søk",
	Back:          "Tilbake",
	Actions:       "Handlinger",
	Status:        "Status",
	StatusIn:      "Til stede",
	StatusOut:     "Gått",
	StatusPending: "Venter",
	Created:       "Opprettet",

	LoginTitle:      "Logg inn",
	SignupTitle:     "Registrer bedriften",
	Email:           "E-post",
	Password:        "Passord",
	ConfirmPassword: "Bekreft passord",
	CompanyName:     "Bedriftsnavn",
	CompanyAddress:  "Bedriftens adresse",
	CompanyPhone:    "Bedriftens telefon",
	SignIn:          "Logg inn",
	SignUp:          "Opprett konto",
	NoAccount:       "Har du ikke konto?",
	HaveAccount:     "Allerede registrert?",
	SignupPending:   "Bedriften er registrert og venter på godkjenning fra en administrator.",
	PasswordRules:   "Passordet må inneholde:",

	DashboardTitle:   "Gjesteoversikt",
	CurrentGuests:    "Gjester nå",
	CheckedInToday:   "Sjekket inn i dag",
	CheckedOutToday:  "Sjekket ut i dag",
	FullName:         "Fullt navn",
	VisitorCompany:   "Firma",
	Phone:            "Telefon",
	HostName:         "Besøker",
	HostEmail:        "Vertens e-post",
	CheckIn:          "Innsjekk",
	CheckOut:         "Sjekk ut",
	PrintBadge:       "Skriv ut adgangskort",
	ExportPDF:        "Gjesteliste (PDF)",
	ExportXLSX:       "Gjesteliste (Excel)",
	NoVisitors:       "Ingen registrerte gjester",
	CheckedOutNotice: "Gjesten er sjekket ut",

	FireAlarm:              "Brannalarm",
	FireAlarmConfirm:       "Utløse brannalarm? Alle gjester med e-postadresse blir varslet.",
	FireAlarmConfirmYes:    "Ja, utløs alarmen",
	AlarmSummaryTitle:      "Brannalarm utløst",
	AlarmCurrentGuests:     "Gjester nå: %d",
	AlarmNotificationsSent: "Varsler sendt: %d/%d",
	AlarmSimulation:        "Simuleringsmodus: ingen e-postleverandør er konfigurert, meldingene ble bare logget.",
	DownloadEvacuation:     "Last ned evakueringsliste",
	EmergencyMessage:       "🚨 BRANNALARM - %s! Forlat bygningen umiddelbart og møt opp på samlingspunktet foran kontoret. Følg evakueringsrutinene. - AccessManager",

	ReceptionTitle:     "Resepsjon",
	RegisterVisitor:    "Registrer gjest",
	Register:           "Registrer",
	RegisteredSuccess:  "Velkommen! Du er nå sjekket inn.",
	GuestRegisterTitle: "Gjesteregistrering",
	PrivacyConsent:     "Jeg godtar personvernerklæringen",
	PrivacyTitle:       "Personvernerklæring",
	PrivacyBody:        "Vi lagrer navn, telefonnummer, eventuell e-post og hvem du besøker mens du er hos oss. Opplysningene slettes automatisk 24 timer etter utsjekk. Dataene brukes kun til gjestehåndtering og evakuering.",
	CheckoutTitle:      "Utsjekk",
	SearchByPhone:      "Skriv inn telefonnummeret ditt",
	SelectToCheckout:   "Velg navnet ditt for å sjekke ut",
	Goodbye:            "Takk for besøket!",
	PanelTitle:         "Gjestepanel",
	GuestsOnSite:       "Gjester til stede",
	LobbyWelcome:       "Velkommen",
	LobbyRegister:      "Jeg kommer",
	LobbyCheckout:      "Jeg går",
	HostArrivalMessage: "%s (%s) har ankommet %s og venter på deg. Ankomst: %s",

	SettingsTitle:     "Bedriftsinnstillinger",
	Logo:              "Logo",
	UploadLogo:        "Last opp logo",
	RemoveLogo:        "Fjern logo",
	ApprovalTitle:     "Godkjenning av bedrifter",
	PendingCompanies:  "Venter på godkjenning",
	ApprovedCompanies: "Godkjente bedrifter",
	Approve:           "Godkjenn",
	Reject:            "Avslå",
	NoPending:         "Ingen bedrifter venter på godkjenning",

	EvacuationList: "EVAKUERINGSLISTE",
	GuestList:      "GJESTELISTE",
	PDFCompany:     "Firma",
	PDFDate:        "Dato",
	PeopleCount:    "%d personer",
	ColNo:          "Nr.",
	ColName:        "Navn",
	ColCompany:     "Firma",
	ColHost:        "Besøker",
	ColPhone:       "Telefon",
	ColCheckIn:     "Innsjekk",
	PDFGenerated:   "Generert: %s",
	PDFFooter:      "SafeVisit - Gjestehåndteringssystem",
	BadgeGuest:     "GJEST",
	FileEvacuation: "evakuerings-liste",
	FileGuestList:  "gjester-liste",
	SheetGuests:    "Gjester",
}
