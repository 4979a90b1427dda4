package i18n

var polish = Table{
	Required:          "Wymagane",
	TooShort:          "Za krótkie",
	InvalidPhone:      "Nieprawidłowy numer telefonu. Użyj 12345678 lub +47 12345678",
	InvalidEmail:      "Nieprawidłowy adres e-mail",
	Mismatch:          "Hasła nie są zgodne",
	PasswordMinLength: "Minimum 8 znaków",
	PasswordUppercase: "Jedna wielka litera",
	PasswordLowercase: "Jedna mała litera",
	PasswordDigit:     "Jedna cyfra",
	PasswordSymbol:    "Jeden znak specjalny (!@#$%^&*)",

	InvalidCredentials: "Nieprawidłowy e-mail lub hasło",
	AccessDenied:       "Brak dostępu",
	EmailTaken:         "Konto z tym adresem e-mail już istnieje",
	InternalError:      "Coś poszło nie tak. Spróbuj ponownie",
	NotFound:           "Nie znaleziono",
	LogoTooLarge:       "Logo może mieć maksymalnie 2 MB",
	LogoInvalidType:    "Logo musi być obrazem",
	NoResults:          "Brak zameldowanych gości z tym numerem",
	Forbidden:          "Nie masz dostępu do tej strony",

	AppName:       "SafeVisit",
	NavDashboard:  "Panel",
	NavReception:  "Recepcja",
	NavSettings:   "Ustawienia",
	NavApproval:   "Zatwierdzenia",
	NavLogout:     "Wyloguj",
	Language:      "Język",
	Save:          "Zapisz",
	Saved:         "Zapisano",
	Cancel:        "Anuluj",
	Search:        "Szukaj",
	Back:          "Wstecz",
	Actions:       "Akcje",
	Status:        "Status",
	StatusIn:      "Na miejscu",
	StatusOut:     "Wyszedł",
	StatusPending: "Oczekuje",
	Created:       "Utworzono",

	LoginTitle:      "Logowanie",
	SignupTitle:     "Zarejestruj firmę",
	Email:           "E-mail",
	Password:        "Hasło",
	ConfirmPassword: "Potwierdź hasło",
	CompanyName:     "Nazwa firmy",
	CompanyAddress:  "Adres firmy",
	CompanyPhone:    "Telefon firmy",
	SignIn:          "Zaloguj",
	SignUp:          "Utwórz konto",
	NoAccount:       "Nie masz konta?",
	HaveAccount:     "Masz już konto?",
	SignupPending:   "Firma została zarejestrowana i czeka na zatwierdzenie przez administratora.",
	PasswordRules:   "Hasło musi zawierać:",

	DashboardTitle:   "Przegląd gości",
	CurrentGuests:    "Obecni goście",
	CheckedInToday:   "Zameldowani dzisiaj",
	CheckedOutToday:  "Wymeldowani dzisiaj",
	FullName:         "Imię i nazwisko",
	VisitorCompany:   "Firma",
	Phone:            "Telefon",
	HostName:         "Odwiedza",
	HostEmail:        "E-mail gospodarza",
	CheckIn:          "Wejście",
	CheckOut:         "Wymelduj",
	PrintBadge:       "Drukuj identyfikator",
	ExportPDF:        "Lista gości (PDF)",
	ExportXLSX:       "Lista gości (Excel)",
	NoVisitors:       "Brak zarejestrowanych gości",
	CheckedOutNotice: "Gość został wymeldowany",

	FireAlarm:              "Alarm pożarowy",
	FireAlarmConfirm:       "Uruchomić alarm pożarowy? Wszyscy goście z adresem e-mail zostaną powiadomieni.",
	FireAlarmConfirmYes:    "Tak, uruchom alarm",
	AlarmSummaryTitle:      "Alarm pożarowy uruchomiony",
	AlarmCurrentGuests:     "Obecni goście: %d",
	AlarmNotificationsSent: "Wysłane powiadomienia: %d/%d",
	AlarmSimulation:        "Tryb symulacji: brak skonfigurowanego dostawcy e-mail, wiadomości zostały tylko zapisane w logu.",
	DownloadEvacuation:     "Pobierz listę ewakuacyjną",
	EmergencyMessage:       "🚨 ALARM POŻAROWY - %s! Natychmiast opuść budynek i udaj się na miejsce zbiórki przed biurem. Postępuj zgodnie z procedurami ewakuacyjnymi. - AccessManager",

	ReceptionTitle:     "Recepcja",
	RegisterVisitor:    "Zarejestruj gościa",
	Register:           "Zarejestruj",
	RegisteredSuccess:  "Witamy! Jesteś zameldowany.",
	GuestRegisterTitle: "Rejestracja gościa",
	PrivacyConsent:     "Akceptuję politykę prywatności",
	PrivacyTitle:       "Polityka prywatności",
	PrivacyBody:        "Przechowujemy imię i nazwisko, numer telefonu, opcjonalny e-mail oraz osobę, którą odwiedzasz, na czas wizyty. Dane są automatycznie usuwane 24 godziny po wymeldowaniu. Służą wyłącznie do obsługi gości i ewakuacji.",
	CheckoutTitle:      "Wymeldowanie",
	SearchByPhone:      "Wpisz swój numer telefonu",
	SelectToCheckout:   "Wybierz swoje nazwisko, aby się wymeldować",
	Goodbye:            "Dziękujemy za wizytę!",
	PanelTitle:         "Panel gościa",
	GuestsOnSite:       "Goście na miejscu",
	LobbyWelcome:       "Witamy",
	LobbyRegister:      "Przychodzę",
	LobbyCheckout:      "Wychodzę",
	HostArrivalMessage: "%s (%s) przybył(a) do %s i czeka na Ciebie. Przybycie: %s",

	SettingsTitle:     "Ustawienia firmy",
	Logo:              "Logo",
	UploadLogo:        "Prześlij logo",
	RemoveLogo:        "Usuń logo",
	ApprovalTitle:     "Zatwierdzanie firm",
	PendingCompanies:  "Oczekujące na zatwierdzenie",
	ApprovedCompanies: "Zatwierdzone firmy",
	Approve:           "Zatwierdź",
	Reject:            "Odrzuć",
	NoPending:         "Brak firm oczekujących na zatwierdzenie",

	EvacuationList: "LISTA EWAKUACYJNA",
	GuestList:      "LISTA GOŚCI",
	PDFCompany:     "Firma",
	PDFDate:        "Data",
	PeopleCount:    "%d osób",
	ColNo:          "Lp.",
	ColName:        "Imię i nazwisko",
	ColCompany:     "Firma",
	ColHost:        "Odwiedza",
	ColPhone:       "Telefon",
	ColCheckIn:     "Wejście",
	PDFGenerated:   "Wygenerowano: %s",
	PDFFooter:      "SafeVisit - System obsługi gości",
	BadgeGuest:     "GOŚĆ",
	FileEvacuation: "lista-ewakuacyjna",
	FileGuestList:  "lista-gosci",
	SheetGuests:    "Goście",
}
