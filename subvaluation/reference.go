package subvaluation

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ReferenceProduct is a market price range for a commonly declared product.
type ReferenceProduct struct {
	ProductName string   `json:"productName" mapstructure:"name"`
	Category    string   `json:"category" mapstructure:"category"`
	MinPrice    float64  `json:"minPrice" mapstructure:"min"`
	MaxPrice    float64  `json:"maxPrice" mapstructure:"max"`
	Keywords    []string `json:"keywords" mapstructure:"keywords"`
}

// DefaultReferences is the built-in market price table (USD).
var DefaultReferences = []ReferenceProduct{
	{ProductName: "iPhone", Category: "Celulares", MinPrice: 400, MaxPrice: 1600, Keywords: []string{"iphone", "apple phone"}},
	{ProductName: "Samsung Galaxy", Category: "Celulares", MinPrice: 150, MaxPrice: 1400, Keywords: []string{"galaxy s", "galaxy z", "samsung galaxy"}},
	{ProductName: "MacBook", Category: "Computadoras", MinPrice: 800, MaxPrice: 3500, Keywords: []string{"macbook", "mac book"}},
	{ProductName: "Laptop", Category: "Computadoras", MinPrice: 250, MaxPrice: 3000, Keywords: []string{"notebook", "portatil", "computadora portatil"}},
	{ProductName: "iPad", Category: "Tabletas", MinPrice: 250, MaxPrice: 1500, Keywords: []string{"ipad"}},
	{ProductName: "Tablet", Category: "Tabletas", MinPrice: 80, MaxPrice: 1200, Keywords: []string{"tableta", "galaxy tab"}},
	{ProductName: "Apple Watch", Category: "Relojes inteligentes", MinPrice: 200, MaxPrice: 900, Keywords: []string{"apple watch", "iwatch"}},
	{ProductName: "Smartwatch", Category: "Relojes inteligentes", MinPrice: 40, MaxPrice: 600, Keywords: []string{"reloj inteligente", "smart watch"}},
	{ProductName: "AirPods", Category: "Audio", MinPrice: 100, MaxPrice: 550, Keywords: []string{"airpods", "air pods"}},
	{ProductName: "PlayStation", Category: "Consolas", MinPrice: 300, MaxPrice: 700, Keywords: []string{"ps5", "ps4", "playstation"}},
	{ProductName: "Xbox", Category: "Consolas", MinPrice: 250, MaxPrice: 600, Keywords: []string{"xbox"}},
	{ProductName: "Nintendo Switch", Category: "Consolas", MinPrice: 200, MaxPrice: 450, Keywords: []string{"nintendo", "switch oled"}},
	{ProductName: "Tarjeta de video", Category: "Componentes", MinPrice: 200, MaxPrice: 2500, Keywords: []string{"rtx", "geforce", "radeon", "gpu"}},
	{ProductName: "Drone", Category: "Camaras", MinPrice: 150, MaxPrice: 2500, Keywords: []string{"dron", "dji"}},
	{ProductName: "GoPro", Category: "Camaras", MinPrice: 200, MaxPrice: 600, Keywords: []string{"gopro", "go pro"}},
	{ProductName: "Perfume", Category: "Perfumeria", MinPrice: 25, MaxPrice: 400, Keywords: []string{"eau de parfum", "eau de toilette", "fragancia"}},
	{ProductName: "Bolso de marca", Category: "Accesorios", MinPrice: 300, MaxPrice: 5000, Keywords: []string{"louis vuitton", "gucci", "prada", "michael kors"}},
	{ProductName: "Zapatillas de marca", Category: "Calzado", MinPrice: 60, MaxPrice: 400, Keywords: []string{"jordan", "yeezy", "air max"}},
}

// LoadReferenceFile reads a YAML/JSON table with a top level "references" list.
func LoadReferenceFile(path string) ([]ReferenceProduct, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read reference file %s: %w", path, err)
	}

	var refs []ReferenceProduct
	if err := v.UnmarshalKey("references", &refs); err != nil {
		return nil, fmt.Errorf("decode reference file %s: %w", path, err)
	}
	if len(refs) == 0 {
		return nil, errors.New("reference file " + path + " has no products")
	}
	return refs, nil
}
