package geo

var (
	europe       = Localized{"Europe", "Európa"}
	asia         = Localized{"Asia", "Ázsia"}
	africa       = Localized{"Africa", "Afrika"}
	northAmerica = Localized{"North America", "Észak-Amerika"}
	southAmerica = Localized{"South America", "Dél-Amerika"}
	oceania      = Localized{"Oceania", "Óceánia"}

	northern = Localized{"Northern", "Északi"}
	southern = Localized{"Southern", "Déli"}
)

func text(en, hu string) *Localized { return &Localized{EN: en, HU: hu} }

// countries is the built-in dataset. Anthem values are asset paths
// resolved by the client, not URLs.
var countries = []Country{
	{ID: "NO", Name: Localized{"Norway", "Norvégia"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Oslo", "Oslo"}, Temp: TempCold, Elev: ElevHigh, Lat: 60, Lng: 8, Anthem: "anthems/no.mp3", Dish: text("Fårikål", "Fårikål"), Animal: text("Lion", "Oroszlán")},
	{ID: "SE", Name: Localized{"Sweden", "Svédország"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Stockholm", "Stockholm"}, Temp: TempCold, Elev: ElevMedium, Lat: 62, Lng: 15, Anthem: "anthems/se.mp3", Dish: text("Swedish meatballs", "Svéd húsgombóc"), Animal: text("Moose", "Jávorszarvas")},
	{ID: "FI", Name: Localized{"Finland", "Finnország"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Helsinki", "Helsinki"}, Temp: TempCold, Elev: ElevLow, Lat: 64, Lng: 26, Dish: text("Karelian pasty", "Karéliai pite"), Animal: text("Brown bear", "Barna medve")},
	{ID: "IS", Name: Localized{"Iceland", "Izland"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Reykjavík", "Reykjavík"}, Temp: TempCold, Elev: ElevMedium, Lat: 65, Lng: -18, Dish: text("Hákarl", "Hákarl"), Animal: text("Gyrfalcon", "Északi sólyom")},
	{ID: "HU", Name: Localized{"Hungary", "Magyarország"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Budapest", "Budapest"}, Temp: TempMild, Elev: ElevLow, Lat: 47, Lng: 20, Anthem: "anthems/hu.mp3", Dish: text("Goulash", "Gulyás"), Animal: text("Turul", "Turul")},
	{ID: "DE", Name: Localized{"Germany", "Németország"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Berlin", "Berlin"}, Temp: TempMild, Elev: ElevLow, Lat: 51, Lng: 9, Anthem: "anthems/de.mp3", Dish: text("Sauerbraten", "Sauerbraten"), Animal: text("Eagle", "Sas")},
	{ID: "FR", Name: Localized{"France", "Franciaország"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Paris", "Párizs"}, Temp: TempMild, Elev: ElevMedium, Lat: 46, Lng: 2, Anthem: "anthems/fr.mp3", Dish: text("Pot-au-feu", "Pot-au-feu"), Animal: text("Gallic rooster", "Gall kakas")},
	{ID: "ES", Name: Localized{"Spain", "Spanyolország"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Madrid", "Madrid"}, Temp: TempWarm, Elev: ElevMedium, Lat: 40, Lng: -4, Anthem: "anthems/es.mp3", Dish: text("Paella", "Paella"), Animal: text("Bull", "Bika")},
	{ID: "PT", Name: Localized{"Portugal", "Portugália"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Lisbon", "Lisszabon"}, Temp: TempWarm, Elev: ElevLow, Lat: 39.5, Lng: -8, Dish: text("Bacalhau", "Bacalhau"), Animal: text("Rooster of Barcelos", "Barcelosi kakas")},
	{ID: "IT", Name: Localized{"Italy", "Olaszország"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Rome", "Róma"}, Temp: TempWarm, Elev: ElevMedium, Lat: 42.8, Lng: 12.8, Anthem: "anthems/it.mp3", Dish: text("Pizza", "Pizza"), Animal: text("Italian wolf", "Itáliai farkas")},
	{ID: "GB", Name: Localized{"United Kingdom", "Egyesült Királyság"}, Continent: europe, Hemisphere: northern, Capital: Localized{"London", "London"}, Temp: TempCool, Elev: ElevLow, Lat: 54, Lng: -2, Anthem: "anthems/gb.mp3", Dish: text("Fish and chips", "Fish and chips"), Animal: text("Lion", "Oroszlán")},
	{ID: "IE", Name: Localized{"Ireland", "Írország"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Dublin", "Dublin"}, Temp: TempCool, Elev: ElevLow, Lat: 53, Lng: -8, Dish: text("Irish stew", "Ír ragu")},
	{ID: "PL", Name: Localized{"Poland", "Lengyelország"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Warsaw", "Varsó"}, Temp: TempCool, Elev: ElevLow, Lat: 52, Lng: 20, Dish: text("Pierogi", "Pierogi"), Animal: text("White-tailed eagle", "Rétisas")},
	{ID: "GR", Name: Localized{"Greece", "Görögország"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Athens", "Athén"}, Temp: TempWarm, Elev: ElevMedium, Lat: 39, Lng: 22, Dish: text("Moussaka", "Muszaka"), Animal: text("Dolphin", "Delfin")},
	{ID: "CH", Name: Localized{"Switzerland", "Svájc"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Bern", "Bern"}, Temp: TempCool, Elev: ElevHigh, Lat: 47, Lng: 8, Dish: text("Fondue", "Fondü")},
	{ID: "AT", Name: Localized{"Austria", "Ausztria"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Vienna", "Bécs"}, Temp: TempCool, Elev: ElevHigh, Lat: 47.5, Lng: 14.5, Dish: text("Wiener schnitzel", "Bécsi szelet")},
	{ID: "RU", Name: Localized{"Russia", "Oroszország"}, Continent: europe, Hemisphere: northern, Capital: Localized{"Moscow", "Moszkva"}, Temp: TempCold, Elev: ElevLow, Lat: 60, Lng: 100, Anthem: "anthems/ru.mp3", Dish: text("Pelmeni", "Pelmenyi"), Animal: text("Brown bear", "Barna medve")},
	{ID: "TR", Name: Localized{"Turkey", "Törökország"}, Continent: asia, Hemisphere: northern, Capital: Localized{"Ankara", "Ankara"}, Temp: TempMild, Elev: ElevHigh, Lat: 39, Lng: 35, Dish: text("Kebab", "Kebab"), Animal: text("Grey wolf", "Szürke farkas")},
	{ID: "CN", Name: Localized{"China", "Kína"}, Continent: asia, Hemisphere: northern, Capital: Localized{"Beijing", "Peking"}, Temp: TempMild, Elev: ElevHigh, Lat: 35, Lng: 105, Anthem: "anthems/cn.mp3", Dish: text("Peking duck", "Pekingi kacsa"), Animal: text("Giant panda", "Óriáspanda")},
	{ID: "JP", Name: Localized{"Japan", "Japán"}, Continent: asia, Hemisphere: northern, Capital: Localized{"Tokyo", "Tokió"}, Temp: TempMild, Elev: ElevMedium, Lat: 36, Lng: 138, Anthem: "anthems/jp.mp3", Dish: text("Sushi", "Szusi"), Animal: text("Green pheasant", "Japán fácán")},
	{ID: "KR", Name: Localized{"South Korea", "Dél-Korea"}, Continent: asia, Hemisphere: northern, Capital: Localized{"Seoul", "Szöul"}, Temp: TempMild, Elev: ElevMedium, Lat: 36, Lng: 128, Anthem: "anthems/kr.mp3", Dish: text("Kimchi", "Kimcsi"), Animal: text("Siberian tiger", "Szibériai tigris")},
	{ID: "IN", Name: Localized{"India", "India"}, Continent: asia, Hemisphere: northern, Capital: Localized{"New Delhi", "Újdelhi"}, Temp: TempHot, Elev: ElevMedium, Lat: 21, Lng: 78, Anthem: "anthems/in.mp3", Dish: text("Khichdi", "Khichdi"), Animal: text("Bengal tiger", "Bengáli tigris")},
	{ID: "TH", Name: Localized{"Thailand", "Thaiföld"}, Continent: asia, Hemisphere: northern, Capital: Localized{"Bangkok", "Bangkok"}, Temp: TempHot, Elev: ElevLow, Lat: 15, Lng: 100, Dish: text("Pad thai", "Pad thai"), Animal: text("Asian elephant", "Ázsiai elefánt")},
	{ID: "VN", Name: Localized{"Vietnam", "Vietnám"}, Continent: asia, Hemisphere: northern, Capital: Localized{"Hanoi", "Hanoi"}, Temp: TempHot, Elev: ElevMedium, Lat: 16, Lng: 108, Dish: text("Pho", "Pho leves"), Animal: text("Water buffalo", "Vízibivaly")},
	{ID: "ID", Name: Localized{"Indonesia", "Indonézia"}, Continent: asia, Hemisphere: southern, Capital: Localized{"Jakarta", "Jakarta"}, Temp: TempHot, Elev: ElevMedium, Lat: -5, Lng: 120, Dish: text("Nasi goreng", "Nasi goreng"), Animal: text("Komodo dragon", "Komodói varánusz")},
	{ID: "SA", Name: Localized{"Saudi Arabia", "Szaúd-Arábia"}, Continent: asia, Hemisphere: northern, Capital: Localized{"Riyadh", "Rijád"}, Temp: TempHot, Elev: ElevMedium, Lat: 25, Lng: 45, Dish: text("Kabsa", "Kabsza"), Animal: text("Arabian camel", "Egypúpú teve")},
	{ID: "IR", Name: Localized{"Iran", "Irán"}, Continent: asia, Hemisphere: northern, Capital: Localized{"Tehran", "Teherán"}, Temp: TempWarm, Elev: ElevHigh, Lat: 32, Lng: 53, Dish: text("Chelow kabab", "Cselou kebab"), Animal: text("Persian leopard", "Perzsa leopárd")},
	{ID: "MN", Name: Localized{"Mongolia", "Mongólia"}, Continent: asia, Hemisphere: northern, Capital: Localized{"Ulaanbaatar", "Ulánbátor"}, Temp: TempCold, Elev: ElevHigh, Lat: 46, Lng: 105, Dish: text("Buuz", "Buuz"), Animal: text("Przewalski's horse", "Przewalski-ló")},
	{ID: "NP", Name: Localized{"Nepal", "Nepál"}, Continent: asia, Hemisphere: northern, Capital: Localized{"Kathmandu", "Katmandu"}, Temp: TempCool, Elev: ElevHigh, Lat: 28, Lng: 84, Dish: text("Dal bhat", "Dal bhat"), Animal: text("Cow", "Tehén")},
	{ID: "US", Name: Localized{"United States", "Amerikai Egyesült Államok"}, Continent: northAmerica, Hemisphere: northern, Capital: Localized{"Washington, D.C.", "Washington"}, Temp: TempMild, Elev: ElevMedium, Lat: 38, Lng: -97, Anthem: "anthems/us.mp3", Dish: text("Hamburger", "Hamburger"), Animal: text("Bald eagle", "Fehérfejű rétisas")},
	{ID: "CA", Name: Localized{"Canada", "Kanada"}, Continent: northAmerica, Hemisphere: northern, Capital: Localized{"Ottawa", "Ottawa"}, Temp: TempCold, Elev: ElevMedium, Lat: 60, Lng: -95, Anthem: "anthems/ca.mp3", Dish: text("Poutine", "Poutine"), Animal: text("Beaver", "Hód")},
	{ID: "MX", Name: Localized{"Mexico", "Mexikó"}, Continent: northAmerica, Hemisphere: northern, Capital: Localized{"Mexico City", "Mexikóváros"}, Temp: TempWarm, Elev: ElevHigh, Lat: 23, Lng: -102, Anthem: "anthems/mx.mp3", Dish: text("Mole poblano", "Mole poblano"), Animal: text("Golden eagle", "Szirti sas")},
	{ID: "CU", Name: Localized{"Cuba", "Kuba"}, Continent: northAmerica, Hemisphere: northern, Capital: Localized{"Havana", "Havanna"}, Temp: TempHot, Elev: ElevLow, Lat: 21.5, Lng: -80, Dish: text("Ropa vieja", "Ropa vieja"), Animal: text("Cuban trogon", "Kubai trogon")},
	{ID: "BR", Name: Localized{"Brazil", "Brazília"}, Continent: southAmerica, Hemisphere: southern, Capital: Localized{"Brasília", "Brazíliaváros"}, Temp: TempHot, Elev: ElevMedium, Lat: -10, Lng: -55, Anthem: "anthems/br.mp3", Dish: text("Feijoada", "Feijoada"), Animal: text("Jaguar", "Jaguár")},
	{ID: "AR", Name: Localized{"Argentina", "Argentína"}, Continent: southAmerica, Hemisphere: southern, Capital: Localized{"Buenos Aires", "Buenos Aires"}, Temp: TempMild, Elev: ElevMedium, Lat: -34, Lng: -64, Anthem: "anthems/ar.mp3", Dish: text("Asado", "Asado"), Animal: text("Rufous hornero", "Rozsdás fazekasmadár")},
	{ID: "CL", Name: Localized{"Chile", "Chile"}, Continent: southAmerica, Hemisphere: southern, Capital: Localized{"Santiago", "Santiago"}, Temp: TempMild, Elev: ElevHigh, Lat: -30, Lng: -71, Dish: text("Pastel de choclo", "Pastel de choclo"), Animal: text("Andean condor", "Andoki kondor")},
	{ID: "PE", Name: Localized{"Peru", "Peru"}, Continent: southAmerica, Hemisphere: southern, Capital: Localized{"Lima", "Lima"}, Temp: TempWarm, Elev: ElevHigh, Lat: -10, Lng: -76, Dish: text("Ceviche", "Ceviche"), Animal: text("Vicuña", "Vikunya")},
	{ID: "CO", Name: Localized{"Colombia", "Kolumbia"}, Continent: southAmerica, Hemisphere: northern, Capital: Localized{"Bogotá", "Bogotá"}, Temp: TempHot, Elev: ElevHigh, Lat: 4, Lng: -72, Dish: text("Bandeja paisa", "Bandeja paisa"), Animal: text("Andean condor", "Andoki kondor")},
	{ID: "EG", Name: Localized{"Egypt", "Egyiptom"}, Continent: africa, Hemisphere: northern, Capital: Localized{"Cairo", "Kairó"}, Temp: TempHot, Elev: ElevLow, Lat: 26, Lng: 30, Dish: text("Koshari", "Kosari"), Animal: text("Steppe eagle", "Pusztai sas")},
	{ID: "MA", Name: Localized{"Morocco", "Marokkó"}, Continent: africa, Hemisphere: northern, Capital: Localized{"Rabat", "Rabat"}, Temp: TempWarm, Elev: ElevMedium, Lat: 32, Lng: -5, Dish: text("Tajine", "Tádzsin"), Animal: text("Barbary lion", "Berber oroszlán")},
	{ID: "NG", Name: Localized{"Nigeria", "Nigéria"}, Continent: africa, Hemisphere: northern, Capital: Localized{"Abuja", "Abuja"}, Temp: TempHot, Elev: ElevMedium, Lat: 10, Lng: 8, Dish: text("Jollof rice", "Jollof rizs")},
	{ID: "ET", Name: Localized{"Ethiopia", "Etiópia"}, Continent: africa, Hemisphere: northern, Capital: Localized{"Addis Ababa", "Addisz-Abeba"}, Temp: TempWarm, Elev: ElevHigh, Lat: 8, Lng: 38, Dish: text("Injera", "Indzsera")},
	{ID: "KE", Name: Localized{"Kenya", "Kenya"}, Continent: africa, Hemisphere: northern, Capital: Localized{"Nairobi", "Nairobi"}, Temp: TempWarm, Elev: ElevHigh, Lat: 1, Lng: 38, Dish: text("Ugali", "Ugali"), Animal: text("Lion", "Oroszlán")},
	{ID: "ZA", Name: Localized{"South Africa", "Dél-afrikai Köztársaság"}, Continent: africa, Hemisphere: southern, Capital: Localized{"Pretoria", "Pretoria"}, Temp: TempMild, Elev: ElevHigh, Lat: -29, Lng: 24, Anthem: "anthems/za.mp3", Dish: text("Bobotie", "Bobotie"), Animal: text("Springbok", "Springbok antilop")},
	{ID: "MG", Name: Localized{"Madagascar", "Madagaszkár"}, Continent: africa, Hemisphere: southern, Capital: Localized{"Antananarivo", "Antananarivo"}, Temp: TempHot, Elev: ElevMedium, Lat: -20, Lng: 47, Dish: text("Romazava", "Romazava"), Animal: text("Ring-tailed lemur", "Gyűrűsfarkú maki")},
	{ID: "AU", Name: Localized{"Australia", "Ausztrália"}, Continent: oceania, Hemisphere: southern, Capital: Localized{"Canberra", "Canberra"}, Temp: TempWarm, Elev: ElevLow, Lat: -27, Lng: 133, Anthem: "anthems/au.mp3", Dish: text("Meat pie", "Húsos pite"), Animal: text("Kangaroo", "Kenguru")},
	{ID: "NZ", Name: Localized{"New Zealand", "Új-Zéland"}, Continent: oceania, Hemisphere: southern, Capital: Localized{"Wellington", "Wellington"}, Temp: TempCool, Elev: ElevMedium, Lat: -41, Lng: 174, Dish: text("Pavlova", "Pavlova"), Animal: text("Kiwi", "Kivi")},
	{ID: "FJ", Name: Localized{"Fiji", "Fidzsi-szigetek"}, Continent: oceania, Hemisphere: southern, Capital: Localized{"Suva", "Suva"}, Temp: TempHot, Elev: ElevLow, Lat: -18, Lng: 178, Dish: text("Kokoda", "Kokoda")},
}
