package lookup

import "strings"

// Well-known consumer and business mail providers across regions. Membership
// is a positive trust signal, not a requirement: plenty of legitimate users
// run their own domains.
var trustedProviders = map[string]struct{}{
	// Global majors
	"gmail.com": {}, "googlemail.com": {}, "yahoo.com": {}, "ymail.com": {},
	"outlook.com": {}, "hotmail.com": {}, "live.com": {}, "msn.com": {},
	"icloud.com": {}, "me.com": {}, "mac.com": {}, "aol.com": {},
	"protonmail.com": {}, "proton.me": {}, "pm.me": {}, "zoho.com": {},
	"zohomail.com": {}, "fastmail.com": {}, "fastmail.fm": {}, "hey.com": {},
	"tutanota.com": {}, "tuta.io": {}, "mail.com": {}, "email.com": {},
	"gmx.com": {}, "gmx.net": {}, "gmx.de": {}, "gmx.at": {}, "gmx.ch": {},

	// Europe
	"web.de": {}, "t-online.de": {}, "freenet.de": {}, "posteo.de": {},
	"mailbox.org": {}, "orange.fr": {}, "wanadoo.fr": {}, "free.fr": {},
	"laposte.net": {}, "sfr.fr": {}, "bbox.fr": {}, "libero.it": {},
	"virgilio.it": {}, "alice.it": {}, "tiscali.it": {}, "tin.it": {},
	"terra.es": {}, "telefonica.net": {}, "sapo.pt": {}, "skynet.be": {},
	"telenet.be": {}, "ziggo.nl": {}, "kpnmail.nl": {}, "planet.nl": {},
	"home.nl": {}, "bluewin.ch": {}, "sunrise.ch": {}, "aon.at": {},
	"btinternet.com": {}, "sky.com": {}, "talktalk.net": {},
	"virginmedia.com": {}, "blueyonder.co.uk": {}, "ntlworld.com": {},
	"yahoo.co.uk": {}, "hotmail.co.uk": {}, "outlook.de": {},
	"telia.com": {}, "telenor.no": {}, "online.no": {}, "mail.dk": {},

	// Eastern Europe / Russia
	"yandex.ru": {}, "yandex.com": {}, "mail.ru": {}, "bk.ru": {},
	"inbox.ru": {}, "list.ru": {}, "rambler.ru": {}, "ukr.net": {},
	"seznam.cz": {}, "centrum.cz": {}, "wp.pl": {}, "onet.pl": {},
	"o2.pl": {}, "interia.pl": {}, "abv.bg": {},

	// Asia-Pacific
	"qq.com": {}, "163.com": {}, "126.com": {}, "yeah.net": {},
	"sina.com": {}, "sina.cn": {}, "sohu.com": {}, "foxmail.com": {},
	"naver.com": {}, "daum.net": {}, "hanmail.net": {}, "nate.com": {},
	"yahoo.co.jp": {}, "docomo.ne.jp": {}, "ezweb.ne.jp": {},
	"rediffmail.com": {}, "yahoo.co.in": {}, "yahoo.com.au": {},
	"bigpond.com": {}, "optusnet.com.au": {}, "xtra.co.nz": {},

	// Americas
	"yahoo.com.br": {}, "uol.com.br": {}, "bol.com.br": {}, "terra.com.br": {},
	"globo.com": {}, "hotmail.com.br": {}, "yahoo.com.mx": {},
	"prodigy.net.mx": {}, "comcast.net": {}, "verizon.net": {}, "att.net": {},
	"sbcglobal.net": {}, "cox.net": {}, "charter.net": {}, "earthlink.net": {},
	"rogers.com": {}, "shaw.ca": {}, "sympatico.ca": {}, "bell.net": {},
}

// Known temporary-email services. The list cannot keep up with how fast new
// burner domains appear, which is why redFlagTokens exists alongside it.
var disposableDomains = map[string]struct{}{
	"10minutemail.com": {}, "10minutemail.net": {}, "10minutemail.org": {},
	"10minemail.com": {}, "20minutemail.com": {}, "33mail.com": {},
	"anonbox.net": {}, "anonymbox.com": {}, "bccto.me": {},
	"burnermail.io": {}, "byom.de": {}, "chacuo.net": {},
	"correotemporal.org": {}, "crazymailing.com": {}, "deadaddress.com": {},
	"discard.email": {}, "discardmail.com": {}, "dispostable.com": {},
	"disposablemail.com": {}, "dropmail.me": {}, "dumpmail.de": {},
	"emailondeck.com": {}, "emailsensei.com": {}, "emltmp.com": {},
	"ethereal.email": {}, "fakeinbox.com": {}, "fakemailgenerator.com": {},
	"fakermail.com": {}, "filzmail.com": {}, "getairmail.com": {},
	"getnada.com": {}, "grr.la": {}, "guerrillamail.biz": {},
	"guerrillamail.com": {}, "guerrillamail.de": {}, "guerrillamail.info": {},
	"guerrillamail.net": {}, "guerrillamail.org": {}, "guerrillamailblock.com": {},
	"haribu.com": {}, "inboxbear.com": {}, "inboxkitten.com": {},
	"incognitomail.org": {}, "jetable.org": {}, "kasmail.com": {},
	"koszmail.pl": {}, "kurzepost.de": {}, "lifebyfood.com": {},
	"mail-temporaire.fr": {}, "mail1a.de": {}, "mail7.io": {},
	"mailcatch.com": {}, "maildrop.cc": {}, "maildu.de": {},
	"maileater.com": {}, "mailexpire.com": {}, "mailforspam.com": {},
	"mailin8r.com": {}, "mailinator.com": {}, "mailinator.net": {},
	"mailinator.org": {}, "mailinator2.com": {}, "mailnesia.com": {},
	"mailnull.com": {}, "mailpoof.com": {}, "mailsac.com": {},
	"mailtemp.info": {}, "mailtothis.com": {}, "meltmail.com": {},
	"mintemail.com": {}, "moakt.com": {}, "mohmal.com": {},
	"mohmal.im": {}, "mt2015.com": {}, "mytemp.email": {},
	"mytrashmail.com": {}, "nada.email": {}, "no-spam.ws": {},
	"nospam.ze.tc": {}, "nowmymail.com": {}, "objectmail.com": {},
	"obobbo.com": {}, "odnorazovoe.ru": {}, "oneoffemail.com": {},
	"owlymail.com": {}, "pokemail.net": {}, "proxymail.eu": {},
	"rcpt.at": {}, "receiveee.com": {}, "rppkn.com": {},
	"sharklasers.com": {}, "shieldemail.com": {}, "sogetthis.com": {},
	"spam4.me": {}, "spamavert.com": {}, "spambog.com": {},
	"spambog.de": {}, "spambog.ru": {}, "spambox.us": {},
	"spamex.com": {}, "spamfree24.org": {}, "spamgourmet.com": {},
	"spamherelots.com": {}, "spamhole.com": {}, "spaml.com": {},
	"spamspot.com": {}, "superrito.com": {}, "teleworm.us": {},
	"temp-mail.io": {}, "temp-mail.org": {}, "temp-mail.ru": {},
	"tempail.com": {}, "tempemail.co.za": {}, "tempemail.net": {},
	"tempinbox.com": {}, "tempmail.de": {}, "tempmail.dev": {},
	"tempmail.net": {}, "tempmail.plus": {}, "tempmailaddress.com": {},
	"tempmailer.com": {}, "tempomail.fr": {}, "temporaryemail.net": {},
	"temporaryinbox.com": {}, "tempr.email": {}, "tempsky.com": {},
	"thankyou2010.com": {}, "throwam.com": {}, "throwawayemailaddress.com": {},
	"throwawaymail.com": {}, "tilien.com": {}, "tmail.ws": {},
	"tmailinator.com": {}, "tmpeml.info": {}, "tmpmail.net": {},
	"tmpmail.org": {}, "trash-mail.at": {}, "trash-mail.com": {},
	"trash-mail.de": {}, "trash2009.com": {}, "trashmail.at": {},
	"trashmail.com": {}, "trashmail.de": {}, "trashmail.me": {},
	"trashmail.net": {}, "trashymail.com": {}, "trbvm.com": {},
	"tyldd.com": {}, "uggsrock.com": {}, "upliftnow.com": {},
	"venompen.com": {}, "veryrealemail.com": {}, "vomoto.com": {},
	"wegwerfadresse.de": {}, "wegwerfemail.de": {}, "wegwerfmail.de": {},
	"wegwerfmail.net": {}, "wegwerfmail.org": {}, "wh4f.org": {},
	"whyspam.me": {}, "willhackforfood.biz": {}, "winemaven.info": {},
	"wuzupmail.net": {}, "yogamaven.com": {}, "yopmail.com": {},
	"yopmail.fr": {}, "yopmail.net": {}, "yuurok.com": {},
	"zehnminutenmail.de": {}, "zetmail.com": {}, "zippymail.info": {},
	"zoemail.net": {},
}

// Lexical red flags. Substring matching catches unlisted clones and
// typo-variants of burner services at the cost of the occasional false
// positive on a legitimately named personal domain.
var redFlagTokens = []string{
	"temp", "disposable", "throwaway", "fake", "trash", "spam",
	"guerrilla", "mailinator", "10minute", "yopmail", "tempmail",
	"burner", "getairmail", "maildrop", "mohmal", "sharklasers",
}

// IsTrustedProvider reports whether the domain is a known mainstream
// mail provider.
func IsTrustedProvider(domain string) bool {
	_, ok := trustedProviders[strings.ToLower(domain)]
	return ok
}

// IsDisposableDomain checks the domain against the burner blocklist and the
// lexical red-flag tokens.
func IsDisposableDomain(domain string) bool {
	d := strings.ToLower(domain)
	if _, ok := disposableDomains[d]; ok {
		return true
	}
	for _, token := range redFlagTokens {
		if strings.Contains(d, token) {
			return true
		}
	}
	return false
}
