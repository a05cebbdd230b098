package errors

import (
	"errors"
	"strings"
)

var messages = map[error]string{
	ErrUserNotFound:           "Gebruiker niet gevonden.",
	ErrEmployerNotFound:       "Werkgever niet gevonden.",
	ErrEmployerExists:         "Er bestaat al een account voor dit bedrijf.",
	ErrWalletNotFound:         "Tegoed niet gevonden.",
	ErrVacancyNotFound:        "Vacature niet gevonden.",
	ErrMediaNotFound:          "Afbeelding niet gevonden.",
	ErrPackageNotFound:        "Pakket niet gevonden.",
	ErrBundleNotFound:         "Creditbundel niet gevonden.",
	ErrInsufficientCredits:    "Onvoldoende credits.",
	ErrConcurrentUpdate:       "Je tegoed is tegelijkertijd gewijzigd. Probeer het opnieuw.",
	ErrInvalidStatus:          "Deze actie is niet mogelijk in de huidige status.",
	ErrClosingDateNotInFuture: "De sluitingsdatum moet in de toekomst liggen.",
	ErrSubmissionInProgress:   "Deze vacature wordt al ingediend.",
	ErrInvalidMediaType:       "Ongeldig type afbeelding.",
	ErrUnsupportedFileType:    "Dit bestandstype wordt niet ondersteund.",
	ErrFileTooLarge:           "Het bestand is te groot.",
	ErrGalleryLimitReached:    "Het maximale aantal sfeerbeelden is bereikt.",
	ErrInvalidToken:           "De inloglink is ongeldig of verlopen.",
	ErrUnauthorized:           "Je bent niet ingelogd.",
	ErrForbidden:              "Je hebt geen toegang tot deze gegevens.",
	ErrOnboardingRequired:     "Rond eerst de onboarding af.",
	ErrAlreadyOnboarded:       "De onboarding is al afgerond.",
	ErrRateLimited:            "Te veel verzoeken. Probeer het later opnieuw.",
	ErrInvalidInput:           "Niet alle velden zijn correct ingevuld.",
}

const genericMessage = "Er is iets misgegaan. Probeer het later opnieuw."

// Message returns the Dutch user-facing message for err. Errors without a
// known sentinel fall back to Translate.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for target, msg := range messages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return Translate(err)
}

// Translate maps infrastructure failures to a readable message based on
// well-known substrings in the error text.
func Translate(err error) string {
	if err == nil {
		return ""
	}
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "timeout"), strings.Contains(text, "deadline exceeded"):
		return "De server reageerde niet op tijd. Probeer het opnieuw."
	case strings.Contains(text, "rate limit"), strings.Contains(text, "too many requests"):
		return "Te veel verzoeken. Probeer het later opnieuw."
	case strings.Contains(text, "no such host"), strings.Contains(text, "dns"):
		return "Een externe dienst is tijdelijk onbereikbaar."
	}
	return genericMessage
}
