package site

import (
	"net/http"

	"golang.org/x/text/language"
)

const langCookie = "sinobridge_lang"

var supported = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var matcher = language.NewMatcher(supported)

// translations holds the public site strings per language.
var translations = map[string]map[string]string{
	"en": {
		"nav.home":         "Home",
		"nav.services":     "Services",
		"nav.about":        "About Us",
		"nav.contact":      "Contact",
		"home.title":       "Your Sourcing Partner in China",
		"home.tagline":     "We connect your business with verified manufacturers, handle quality control and manage logistics end to end.",
		"home.cta":         "Request a Quote",
		"services.title":   "Our Services",
		"services.sourcing": "Product Sourcing",
		"services.sourcing.desc": "Factory identification, price negotiation and sample management across mainland China.",
		"services.qc":      "Quality Control",
		"services.qc.desc": "Pre-shipment inspections and in-production checks by our own staff.",
		"services.logistics": "Logistics",
		"services.logistics.desc": "Sea, air and rail freight coordination with door-to-door tracking.",
		"about.title":      "About Us",
		"about.body":       "We are a sourcing and trading agency bridging overseas buyers and Chinese suppliers. Our team works on a transparent commission basis.",
		"contact.title":    "Contact Us",
		"contact.email":    "Email",
		"contact.phone":    "Phone",
		"contact.address":  "Address",
	},
	"zh": {
		"nav.home":         "首页",
		"nav.services":     "服务",
		"nav.about":        "关于我们",
		"nav.contact":      "联系我们",
		"home.title":       "您在中国的采购伙伴",
		"home.tagline":     "我们为您对接经过验证的制造商，全程负责质量控制和物流管理。",
		"home.cta":         "索取报价",
		"services.title":   "我们的服务",
		"services.sourcing": "产品采购",
		"services.sourcing.desc": "在中国大陆范围内寻找工厂、议价并管理样品。",
		"services.qc":      "质量控制",
		"services.qc.desc": "由我们自己的团队执行出货前检验和生产中检查。",
		"services.logistics": "物流",
		"services.logistics.desc": "海运、空运和铁路货运协调，门到门追踪。",
		"about.title":      "关于我们",
		"about.body":       "我们是一家连接海外买家与中国供应商的采购贸易代理，按透明佣金模式运作。",
		"contact.title":    "联系我们",
		"contact.email":    "邮箱",
		"contact.phone":    "电话",
		"contact.address":  "地址",
	},
}

// Strings returns the translation table for lang, falling back to English.
func Strings(lang string) map[string]string {
	if t, ok := translations[lang]; ok {
		return t
	}
	return translations["en"]
}

// DetectLang picks the page language: explicit query parameter, then the
// language cookie, then Accept-Language negotiation, then the default.
func DetectLang(r *http.Request, defaultLang string) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		if _, ok := translations[lang]; ok {
			return lang
		}
	}
	if cookie, err := r.Cookie(langCookie); err == nil {
		if _, ok := translations[cookie.Value]; ok {
			return cookie.Value
		}
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		tags, _, err := language.ParseAcceptLanguage(accept)
		if err == nil {
			tag, _, _ := matcher.Match(tags...)
			base, _ := tag.Base()
			if _, ok := translations[base.String()]; ok {
				return base.String()
			}
		}
	}
	if _, ok := translations[defaultLang]; ok {
		return defaultLang
	}
	return "en"
}
