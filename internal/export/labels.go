package export

import (
	"bytes"
	"html/template"

	"github.com/shopspring/decimal"

	"marketpos/internal/model"
	"marketpos/internal/service"
)

// ShelfLabel is one printable price tag.
type ShelfLabel struct {
	Code      string
	Name      string
	Price     string // resolved sale price, rounded for display only
	OnOffer   bool
	StoreName string
}

var labelTemplate = template.Must(template.New("labels").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Shelf labels</title>
<style>
.label { width: 6cm; height: 3cm; border: 1px dashed #999; float: left;
         margin: 2mm; padding: 3mm; font-family: sans-serif; page-break-inside: avoid; }
.label .name { font-size: 11pt; font-weight: bold; }
.label .price { font-size: 18pt; font-weight: bold; margin-top: 2mm; }
.label .offer { color: #c00; }
.label .code { font-size: 8pt; color: #555; }
.label .store { font-size: 7pt; color: #999; margin-top: 1mm; }
</style>
</head>
<body>
{{range .}}<div class="label">
  <div class="name">{{.Name}}</div>
  <div class="price{{if .OnOffer}} offer{{end}}">{{.Price}}</div>
  <div class="code">#{{.Code}}</div>
  <div class="store">{{.StoreName}}</div>
</div>
{{end}}</body>
</html>
`))

// ShelfLabelsHTML renders printable price tags for a supplier's whole
// price list at current checkout prices. Printing itself happens in the
// browser; this is just the static document.
func ShelfLabelsHTML(supplier *model.Supplier, margin decimal.Decimal, storeName string) ([]byte, error) {
	labels := make([]ShelfLabel, 0, len(supplier.Products))
	for i := range supplier.Products {
		p := &supplier.Products[i]
		labels = append(labels, ShelfLabel{
			Code:      p.Code,
			Name:      p.Name,
			Price:     service.ResolveSalePrice(p, margin).StringFixed(2),
			OnOffer:   p.HasOffer(),
			StoreName: storeName,
		})
	}

	var buf bytes.Buffer
	if err := labelTemplate.Execute(&buf, labels); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
