package regulatory

// DefaultRules mirrors the Panamanian import permit requirements for courier
// goods. Rules are independent: all matches fire.
var DefaultRules = []Rule{
	{
		ID:         "pharma",
		Expression: `code.startsWith("3004") || category == "Farmacéuticos"`,
		Alerts: []AlertTemplate{{
			Entity:      "Dirección Nacional de Farmacia y Drogas",
			EntityCode:  "DNFD",
			Requirement: "Registro Sanitario y Licencia de Importación",
			Description: "Medicamentos requieren autorización previa del MINSA",
		}},
	},
	{
		ID:         "supplements",
		Expression: `code.startsWith("2106.90") || category == "Suplementos"`,
		Alerts: []AlertTemplate{{
			Entity:      "Dirección de Farmacia y Drogas",
			EntityCode:  "DNFD",
			Requirement: "Notificación Sanitaria Obligatoria",
			Description: "Suplementos alimenticios requieren NSO del MINSA",
		}},
	},
	{
		ID:         "vitamins",
		Expression: `code.startsWith("2936") || description.contains("vitamina")`,
		Alerts: []AlertTemplate{{
			Entity:      "Dirección de Farmacia y Drogas",
			EntityCode:  "DNFD",
			Requirement: "Registro como Suplemento o Medicamento",
			Description: "Vitaminas pueden requerir registro según concentración",
		}},
	},
	{
		ID: "medical-devices",
		Expression: `code.startsWith("9018") || code.startsWith("9019") || code.startsWith("9021") ||
			category == "Médico"`,
		Alerts: []AlertTemplate{{
			Entity:      "Ministerio de Salud (MINSA)",
			EntityCode:  "MINSA",
			Requirement: "Registro de Dispositivo Médico",
			Description: "Equipos médicos requieren certificación y registro sanitario",
		}},
	},
	{
		ID:         "agricultural",
		Expression: `code.matches("^(0[1-9]|1[0-4])")`,
		Alerts: []AlertTemplate{{
			Entity:      "Ministerio de Desarrollo Agropecuario",
			EntityCode:  "MIDA",
			Requirement: "Certificado Fitosanitario/Zoosanitario",
			Description: "Productos agrícolas y animales requieren permisos MIDA",
		}},
	},
	{
		ID:         "seeds",
		Expression: `code.startsWith("1209")`,
		Alerts: []AlertTemplate{{
			Entity:      "MIDA - Dirección de Sanidad Vegetal",
			EntityCode:  "MIDA-DSV",
			Requirement: "Permiso de Importación de Semillas",
			Description: "Semillas para siembra requieren autorización especial",
		}},
	},
	{
		ID:         "pet-food",
		Expression: `code.startsWith("2309") || category == "Mascotas"`,
		Alerts: []AlertTemplate{{
			Entity:      "MIDA - Dirección de Salud Animal",
			EntityCode:  "MIDA-DSA",
			Requirement: "Registro de Alimento para Animales",
			Description: "Alimentos para mascotas requieren registro MIDA",
		}},
	},
	{
		ID:         "meat",
		Expression: `code.startsWith("02")`,
		Alerts: []AlertTemplate{
			{
				Entity:      "Autoridad Panameña de Seguridad de Alimentos",
				EntityCode:  "APA",
				Requirement: "Certificado Zoosanitario",
				Description: "Carnes requieren certificación sanitaria de origen",
			},
			{
				Entity:      "MINSA",
				EntityCode:  "MINSA",
				Requirement: "Permiso de Importación",
				Description: "Productos cárnicos requieren autorización MINSA",
			},
		},
	},
	{
		ID:         "fish",
		Expression: `code.startsWith("03")`,
		Alerts: []AlertTemplate{{
			Entity:      "Autoridad Panameña de Seguridad de Alimentos",
			EntityCode:  "APA",
			Requirement: "Certificado Sanitario de Productos Pesqueros",
			Description: "Mariscos y pescados requieren certificación APA",
		}},
	},
	{
		ID:         "dairy",
		Expression: `code.startsWith("04")`,
		Alerts: []AlertTemplate{{
			Entity:      "APA",
			EntityCode:  "APA",
			Requirement: "Certificado Zoosanitario para Lácteos",
			Description: "Productos lácteos requieren certificación de origen",
		}},
	},
	{
		ID:         "electronics",
		Expression: `code.startsWith("85") || category == "Electrónica"`,
		Alerts: []AlertTemplate{{
			Entity:      "ACODECO",
			EntityCode:  "ACODECO",
			Requirement: "Etiquetado en Español",
			Description: "Productos electrónicos requieren etiquetado y garantía",
		}},
	},
	{
		ID:         "toys",
		Expression: `code.startsWith("9503") || category == "Juguetes"`,
		Alerts: []AlertTemplate{{
			Entity:      "ACODECO",
			EntityCode:  "ACODECO",
			Requirement: "Certificación de Seguridad",
			Description: "Juguetes requieren cumplir normas de seguridad",
		}},
	},
	{
		ID:         "tobacco",
		Expression: `code.startsWith("24") || code.startsWith("9614") || category == "Tabaco"`,
		Alerts: []AlertTemplate{{
			Entity:      "Ministerio de Salud",
			EntityCode:  "MINSA",
			Requirement: "Regulación Especial de Tabaco",
			Description: "Productos de tabaco y vapers tienen regulaciones sanitarias estrictas. DAI elevado aplicable.",
		}},
	},
	{
		ID:         "high-duty",
		Expression: `duty > 100.0`,
		Alerts: []AlertTemplate{{
			Entity:      "Autoridad Nacional de Aduanas",
			EntityCode:  "ANA",
			Requirement: "Atención Especial - DAI Elevado",
			Description: "Producto con DAI superior al 100%. Verificar contingentes arancelarios.",
		}},
	},
}
