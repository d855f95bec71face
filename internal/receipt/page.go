package receipt

// Page is the view model of the printable receipt document.
type Page struct {
	Receipt     Receipt
	PrintAction string
	BackHref    string
	AutoPrint   bool
}
