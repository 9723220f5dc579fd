package charts

import (
	"context"
	"database/sql"
	"fmt"

	"musiccharts/pkg/models"
)

// regionCatalog lists every region the chart provider publishes a feed
// for, paired with a display name for the reporting layer.
var regionCatalog = []models.RegionName{
	{Code: "dz", Name: "Algeria"},
	{Code: "ao", Name: "Angola"},
	{Code: "ai", Name: "Anguilla"},
	{Code: "ag", Name: "Antigua and Barbuda"},
	{Code: "ar", Name: "Argentina"},
	{Code: "am", Name: "Armenia"},
	{Code: "au", Name: "Australia"},
	{Code: "at", Name: "Austria"},
	{Code: "az", Name: "Azerbaijan"},
	{Code: "bs", Name: "Bahamas"},
	{Code: "bh", Name: "Bahrain"},
	{Code: "bb", Name: "Barbados"},
	{Code: "by", Name: "Belarus"},
	{Code: "be", Name: "Belgium"},
	{Code: "bz", Name: "Belize"},
	{Code: "bj", Name: "Benin"},
	{Code: "bm", Name: "Bermuda"},
	{Code: "bt", Name: "Bhutan"},
	{Code: "bo", Name: "Bolivia"},
	{Code: "ba", Name: "Bosnia and Herzegovina"},
	{Code: "bw", Name: "Botswana"},
	{Code: "br", Name: "Brazil"},
	{Code: "vg", Name: "British Virgin Islands"},
	{Code: "bg", Name: "Bulgaria"},
	{Code: "kh", Name: "Cambodia"},
	{Code: "cm", Name: "Cameroon"},
	{Code: "ca", Name: "Canada"},
	{Code: "cv", Name: "Cape Verde"},
	{Code: "ky", Name: "Cayman Islands"},
	{Code: "td", Name: "Chad"},
	{Code: "cl", Name: "Chile"},
	{Code: "cn", Name: "China"},
	{Code: "co", Name: "Colombia"},
	{Code: "cr", Name: "Costa Rica"},
	{Code: "hr", Name: "Croatia"},
	{Code: "cy", Name: "Cyprus"},
	{Code: "cz", Name: "Czechia"},
	{Code: "ci", Name: "Cote d'Ivoire"},
	{Code: "cd", Name: "Democratic Republic of the Congo"},
	{Code: "dk", Name: "Denmark"},
	{Code: "dm", Name: "Dominica"},
	{Code: "do", Name: "Dominican Republic"},
	{Code: "ec", Name: "Ecuador"},
	{Code: "eg", Name: "Egypt"},
	{Code: "sv", Name: "El Salvador"},
	{Code: "ee", Name: "Estonia"},
	{Code: "sz", Name: "Eswatini"},
	{Code: "fj", Name: "Fiji"},
	{Code: "fi", Name: "Finland"},
	{Code: "fr", Name: "France"},
	{Code: "ga", Name: "Gabon"},
	{Code: "gm", Name: "Gambia"},
	{Code: "ge", Name: "Georgia"},
	{Code: "de", Name: "Germany"},
	{Code: "gh", Name: "Ghana"},
	{Code: "gr", Name: "Greece"},
	{Code: "gd", Name: "Grenada"},
	{Code: "gt", Name: "Guatemala"},
	{Code: "gw", Name: "Guinea-Bissau"},
	{Code: "gy", Name: "Guyana"},
	{Code: "hn", Name: "Honduras"},
	{Code: "hk", Name: "Hong Kong"},
	{Code: "hu", Name: "Hungary"},
	{Code: "is", Name: "Iceland"},
	{Code: "in", Name: "India"},
	{Code: "id", Name: "Indonesia"},
	{Code: "iq", Name: "Iraq"},
	{Code: "ie", Name: "Ireland"},
	{Code: "il", Name: "Israel"},
	{Code: "it", Name: "Italy"},
	{Code: "jm", Name: "Jamaica"},
	{Code: "jp", Name: "Japan"},
	{Code: "jo", Name: "Jordan"},
	{Code: "kz", Name: "Kazakhstan"},
	{Code: "ke", Name: "Kenya"},
	{Code: "kr", Name: "South Korea"},
	{Code: "xk", Name: "Kosovo"},
	{Code: "kw", Name: "Kuwait"},
	{Code: "kg", Name: "Kyrgyzstan"},
	{Code: "la", Name: "Laos"},
	{Code: "lv", Name: "Latvia"},
	{Code: "lb", Name: "Lebanon"},
	{Code: "lr", Name: "Liberia"},
	{Code: "ly", Name: "Libya"},
	{Code: "lt", Name: "Lithuania"},
	{Code: "lu", Name: "Luxembourg"},
	{Code: "mo", Name: "Macau"},
	{Code: "mg", Name: "Madagascar"},
	{Code: "mw", Name: "Malawi"},
	{Code: "my", Name: "Malaysia"},
	{Code: "mv", Name: "Maldives"},
	{Code: "ml", Name: "Mali"},
	{Code: "mt", Name: "Malta"},
	{Code: "mr", Name: "Mauritania"},
	{Code: "mu", Name: "Mauritius"},
	{Code: "mx", Name: "Mexico"},
	{Code: "fm", Name: "Micronesia"},
	{Code: "md", Name: "Moldova"},
	{Code: "mn", Name: "Mongolia"},
	{Code: "me", Name: "Montenegro"},
	{Code: "ms", Name: "Montserrat"},
	{Code: "ma", Name: "Morocco"},
	{Code: "mz", Name: "Mozambique"},
	{Code: "mm", Name: "Myanmar"},
	{Code: "na", Name: "Namibia"},
	{Code: "np", Name: "Nepal"},
	{Code: "nl", Name: "Netherlands"},
	{Code: "nz", Name: "New Zealand"},
	{Code: "ni", Name: "Nicaragua"},
	{Code: "ne", Name: "Niger"},
	{Code: "ng", Name: "Nigeria"},
	{Code: "mk", Name: "North Macedonia"},
	{Code: "no", Name: "Norway"},
	{Code: "om", Name: "Oman"},
	{Code: "pa", Name: "Panama"},
	{Code: "pg", Name: "Papua New Guinea"},
	{Code: "py", Name: "Paraguay"},
	{Code: "pe", Name: "Peru"},
	{Code: "ph", Name: "Philippines"},
	{Code: "pl", Name: "Poland"},
	{Code: "pt", Name: "Portugal"},
	{Code: "qa", Name: "Qatar"},
	{Code: "cg", Name: "Republic of the Congo"},
	{Code: "ro", Name: "Romania"},
	{Code: "ru", Name: "Russia"},
	{Code: "rw", Name: "Rwanda"},
	{Code: "sa", Name: "Saudi Arabia"},
	{Code: "sn", Name: "Senegal"},
	{Code: "rs", Name: "Serbia"},
	{Code: "sc", Name: "Seychelles"},
	{Code: "sl", Name: "Sierra Leone"},
	{Code: "sg", Name: "Singapore"},
	{Code: "sk", Name: "Slovakia"},
	{Code: "si", Name: "Slovenia"},
	{Code: "sb", Name: "Solomon Islands"},
	{Code: "za", Name: "South Africa"},
	{Code: "es", Name: "Spain"},
	{Code: "lk", Name: "Sri Lanka"},
	{Code: "kn", Name: "Saint Kitts and Nevis"},
	{Code: "lc", Name: "Saint Lucia"},
	{Code: "vc", Name: "Saint Vincent and the Grenadines"},
	{Code: "sr", Name: "Suriname"},
	{Code: "se", Name: "Sweden"},
	{Code: "ch", Name: "Switzerland"},
	{Code: "tw", Name: "Taiwan"},
	{Code: "tj", Name: "Tajikistan"},
	{Code: "tz", Name: "Tanzania"},
	{Code: "th", Name: "Thailand"},
	{Code: "to", Name: "Tonga"},
	{Code: "tt", Name: "Trinidad and Tobago"},
	{Code: "tn", Name: "Tunisia"},
	{Code: "tm", Name: "Turkmenistan"},
	{Code: "tc", Name: "Turks and Caicos Islands"},
	{Code: "tr", Name: "Turkey"},
	{Code: "ae", Name: "United Arab Emirates"},
	{Code: "ug", Name: "Uganda"},
	{Code: "ua", Name: "Ukraine"},
	{Code: "gb", Name: "United Kingdom"},
	{Code: "us", Name: "United States"},
	{Code: "uy", Name: "Uruguay"},
	{Code: "uz", Name: "Uzbekistan"},
	{Code: "vu", Name: "Vanuatu"},
	{Code: "ve", Name: "Venezuela"},
	{Code: "vn", Name: "Vietnam"},
	{Code: "ye", Name: "Yemen"},
	{Code: "zm", Name: "Zambia"},
	{Code: "zw", Name: "Zimbabwe"},
}

// RegionCodes returns the feed region codes in catalog order.
func RegionCodes() []string {
	codes := make([]string, 0, len(regionCatalog))
	for _, r := range regionCatalog {
		codes = append(codes, r.Code)
	}
	return codes
}

// SeedRegions fills the region_names lookup table. Existing rows are
// left alone.
func SeedRegions(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO region_names (code, name) VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare region stmt: %w", err)
	}
	defer stmt.Close()

	for _, r := range regionCatalog {
		if _, err := stmt.ExecContext(ctx, r.Code, r.Name); err != nil {
			return fmt.Errorf("seed region %s: %w", r.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
