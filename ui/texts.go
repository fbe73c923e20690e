package ui

import "fmt"

// User facing strings. The client is used by a Polish speaking company.
const (
	textLoading        = "Ładowanie komunikatora..."
	textLoginTitle     = "Firmowy Komunikator Wewnętrzny"
	textLoginSubtitle  = "Zaloguj się, aby rozpocząć komunikację z zespołem"
	textLoginButton    = "Zaloguj się"
	textLoginFailed    = "Logowanie nie powiodło się"
	textEmail          = "E-mail"
	textPassword       = "Hasło"
	textAppName        = "Komunikator"
	textSearch         = "Szukaj kanałów..."
	textChannels       = "Kanały"
	textOnline         = "Online"
	textPickChannel    = "Wybierz kanał"
	textPickChannelSub = "Wybierz kanał z listy po lewej stronie, aby rozpocząć rozmowę"
	textNoMessages     = "Brak wiadomości w tym kanale. Napisz pierwszą!"
	textSendFailed     = "Nie udało się wysłać wiadomości"
	textHelp           = "tab: fokus • ↑/↓: kanał • enter: wybierz/wyślij • ctrl+l: wyloguj • ctrl+c: wyjście"
)

func inputPlaceholder(channelName string) string {
	return fmt.Sprintf("Napisz wiadomość do #%s...", channelName)
}
