package tariff

// DefaultEntries is the built-in subset of the Panamanian tariff schedule used
// for courier manifests. Duty (DAI), consumption tax (ISC) and VAT (ITBMS) are
// percentages.
var DefaultEntries = []Entry{
	{Code: "0201.30.00.00", Description: "Carne de res", Category: "Alimentos", DutyPercent: 30, Unit: "kg",
		Keywords: []string{"carne de res", "bistec", "lomo de res", "carne molida"}},
	{Code: "0207.12.00.00", Description: "Pollo congelado", Category: "Alimentos", DutyPercent: 260, Unit: "kg",
		Keywords: []string{"pollo", "gallina", "pechuga", "alitas"}},
	{Code: "0302.11.00.00", Description: "Pescado fresco", Category: "Alimentos", DutyPercent: 15, Unit: "kg",
		Keywords: []string{"pescado", "trucha", "salmon", "tilapia"}},
	{Code: "0401.20.00.00", Description: "Leche", Category: "Alimentos", DutyPercent: 40, Unit: "l",
		Keywords: []string{"leche", "lacteo"}},
	{Code: "0901.21.00.00", Description: "Cafe tostado", Category: "Alimentos", DutyPercent: 15, Unit: "kg",
		Keywords: []string{"cafe", "espresso", "capsulas de cafe"}},
	{Code: "1209.91.00.00", Description: "Semillas para siembra", Category: "Agrícola", Unit: "kg",
		Keywords: []string{"semilla", "semillas"}},
	{Code: "2106.90.00.00", Description: "Suplemento alimenticio", Category: CategorySupplements, DutyPercent: 10, VatPercent: 7, Unit: "kg",
		Keywords: []string{"suplemento", "proteina", "whey", "creatina", "colageno"}},
	{Code: "2204.21.00.00", Description: "Vino", Category: "Bebidas", DutyPercent: 15, ConsumptionTaxPercent: 10, VatPercent: 10, Unit: "l",
		Keywords: []string{"vino", "tinto", "champagne"}},
	{Code: "2309.10.00.00", Description: "Alimento para mascotas", Category: CategoryPets, DutyPercent: 10, VatPercent: 7, Unit: "kg",
		Keywords: []string{"croquetas", "comida para perro", "comida para gato"}},
	{Code: "2402.20.00.00", Description: "Cigarrillos", Category: CategoryTobacco, DutyPercent: 15, ConsumptionTaxPercent: 100, VatPercent: 15, Unit: "u",
		Keywords: []string{"cigarrillo", "cigarro", "tabaco"}},
	{Code: "2936.29.00.00", Description: "Vitaminas", Category: "Salud", Unit: "kg",
		Keywords: []string{"vitamina", "multivitaminico", "omega"}},
	{Code: "3004.90.00.00", Description: "Medicamentos", Category: CategoryPharma, Unit: "u",
		Keywords: []string{"medicina", "medicamento", "pastillas", "jarabe", "ibuprofeno"}},
	{Code: "3303.00.00.00", Description: "Perfume", Category: "Cosméticos", DutyPercent: 10, VatPercent: 7, Unit: "u",
		Keywords: []string{"perfume", "colonia", "fragancia"}},
	{Code: "3304.99.00.00", Description: "Maquillaje y cosmeticos", Category: "Cosméticos", DutyPercent: 10, VatPercent: 7, Unit: "u",
		Keywords: []string{"maquillaje", "labial", "crema facial", "cosmetico"}},
	{Code: "4202.21.00.00", Description: "Bolso de mano", Category: "Accesorios", DutyPercent: 15, VatPercent: 7, Unit: "u",
		Keywords: []string{"bolso", "cartera", "mochila"}},
	{Code: "4901.99.00.00", Description: "Libros", Category: "Libros", Unit: "u",
		Keywords: []string{"libro", "novela", "enciclopedia"}},
	{Code: "4911.99.00.00", Description: "Documentos", Category: CategoryDocuments, Unit: "u",
		Keywords: []string{"documento", "papeles", "correspondencia"}},
	{Code: "6109.10.00.00", Description: "Camiseta de algodon", Category: "Ropa", DutyPercent: 15, VatPercent: 7, Unit: "u",
		Keywords: []string{"camiseta", "playera", "t shirt", "polo"}},
	{Code: "6204.62.00.00", Description: "Pantalones", Category: "Ropa", DutyPercent: 15, VatPercent: 7, Unit: "u",
		Keywords: []string{"pantalon", "jeans", "shorts"}},
	{Code: "6403.99.00.00", Description: "Zapatos", Category: "Calzado", DutyPercent: 15, VatPercent: 7, Unit: "par",
		Keywords: []string{"zapato", "zapatillas", "tenis", "sandalias", "botas"}},
	{Code: "8471.30.00.00", Description: "Laptop", Category: CategoryElectronics, VatPercent: 7, Unit: "u",
		Keywords: []string{"laptop", "notebook", "computadora portatil", "macbook"}},
	{Code: "8473.30.00.00", Description: "Tarjeta de video", Category: CategoryElectronics, VatPercent: 7, Unit: "u",
		Keywords: []string{"tarjeta de video", "gpu", "tarjeta grafica", "memoria ram"}},
	{Code: "8517.13.00.00", Description: "Telefono celular", Category: CategoryElectronics, VatPercent: 7, Unit: "u",
		Keywords: []string{"celular", "iphone", "smartphone", "telefono movil"}},
	{Code: "8518.30.00.00", Description: "Audifonos", Category: CategoryElectronics, VatPercent: 7, Unit: "u",
		Keywords: []string{"audifonos", "auriculares", "airpods", "headset"}},
	{Code: "8528.72.00.00", Description: "Televisor", Category: CategoryElectronics, DutyPercent: 10, VatPercent: 7, Unit: "u",
		Keywords: []string{"televisor", "smart tv", "pantalla"}},
	{Code: "8543.40.00.00", Description: "Cigarrillo electronico", Category: CategoryTobacco, DutyPercent: 15, VatPercent: 7, Unit: "u",
		Keywords: []string{"vaper", "vape", "cigarrillo electronico"}},
	{Code: "9018.90.00.00", Description: "Tensiometro", Category: CategoryMedical, Unit: "u",
		Keywords: []string{"tensiometro", "glucometro", "oximetro", "estetoscopio"}},
	{Code: "9102.11.00.00", Description: "Reloj de pulsera", Category: "Accesorios", DutyPercent: 5, VatPercent: 7, Unit: "u",
		Keywords: []string{"reloj", "smartwatch"}},
	{Code: "9503.00.00.00", Description: "Juguetes", Category: CategoryToys, DutyPercent: 5, VatPercent: 7, Unit: "u",
		Keywords: []string{"juguete", "muneca", "lego", "peluche"}},
	{Code: "9614.00.00.00", Description: "Pipas para fumar", Category: CategoryTobacco, DutyPercent: 15, VatPercent: 7, Unit: "u",
		Keywords: []string{"pipa", "hookah", "narguile"}},
}
