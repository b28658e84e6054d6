package handler

// Option lists for the order form. These are business reference data
// maintained by the back office; values are presented verbatim.

var salesChannels = []string{
	"Телеграм",
	"WKO",
	"Ав-1",
	"Ав-2",
	"ТГ Постоянник",
	"Викео постоянник",
	"Постоянник",
	"Дропер",
	"%",
}

var logisticsCarriers = []string{
	"СДЕК",
	"Авито СДЕК",
	"Авито Почта РФ",
	"Авито Boxberry",
	"Почта РФ",
	"Самовывоз",
	"Достависта",
	"Яндекс",
	"x EXMAIL",
	"Boxberry",
	"Авито Яндекс",
	"Наш курьер",
	"JDE",
	"Авито Сберлогистика",
	"Авито DPD",
	"Мегатранс",
	"МэджикТранс",
	"Деловые Линии",
	"КИТ",
	"ПЭК",
	"Энергия",
	"5POST",
	"КСЕ",
	"Байкал",
}

var suppliers = []string{
	"У Арута",
	"Мой склад",
	"Пос-Y1 склад",
	"Пос-Y2  склад",
	"Пос-Y30 склад",
	"Пос-S1 склад",
	"Пос-S2 склад",
	"Пос-K1 склад",
	"Пос-Y1",
	"Пос-Y2",
	"Пос-Y3",
	"Пос-Y4",
	"Пос-Y5",
	"Пос-Y6",
	"Пос-Y7",
	"Пос-Y8",
	"Пос-Y9",
	"Пос-Y10",
	"Пос-Y11",
	"Пос-Y12",
	"Пос-Y20",
	"Пос-Y31",
	"Пост-Y30",
	"Пос-Y13",
	"Пост-Y15",
	"Пост-Y14",
	"Пост-17",
	"Через Сахи",
}
